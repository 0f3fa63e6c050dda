package app

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/yungbote/routesettings-backend/internal/platform/envutil"
)

const defaultBranch = "main"

// CurrentBranch prefers CURRENT_BRANCH, then the checked out branch of the
// git work tree at dir, then main.
func CurrentBranch(dir string) string {
	if b := envutil.String("CURRENT_BRANCH", ""); b != "" {
		return b
	}
	raw, err := os.ReadFile(filepath.Join(dir, ".git", "HEAD"))
	if err != nil {
		return defaultBranch
	}
	return branchFromHead(string(raw))
}

func branchFromHead(head string) string {
	head = strings.TrimSpace(head)
	ref, ok := strings.CutPrefix(head, "ref:")
	if !ok {
		// Detached HEAD holds a commit hash.
		return defaultBranch
	}
	ref = strings.TrimSpace(ref)
	name := strings.TrimPrefix(ref, "refs/heads/")
	if name == "" || name == ref {
		return defaultBranch
	}
	return name
}
