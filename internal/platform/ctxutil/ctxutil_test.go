package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestRequestDataRoundTrip(t *testing.T) {
	id := uuid.New()
	ctx := WithRequestData(context.Background(), &RequestData{UserID: id, Username: "anna", AuthMethod: "basic"})

	if got := UserID(ctx); got != id {
		t.Fatalf("UserID: got %s want %s", got, id)
	}
	if got := UserID(context.Background()); got != uuid.Nil {
		t.Fatalf("anonymous UserID should be nil, got %s", got)
	}
	if GetTraceData(ctx) != nil {
		t.Fatal("trace data should be absent")
	}
}
