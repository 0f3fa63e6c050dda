package handlers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yungbote/routesettings-backend/internal/services"
)

func TestDecodeRouteInputPresence(t *testing.T) {
	in, fields, err := decodeRouteInput([]byte(`{"name":"x","places":null}`), false)
	require.NoError(t, err)
	require.Equal(t, services.FieldSet{Name: true, Places: true}, fields)
	require.Equal(t, "x", *in.Name)
	require.Nil(t, in.Places)

	_, fields, err = decodeRouteInput([]byte(`{"name":"x"}`), true)
	require.NoError(t, err)
	require.Equal(t, services.AllFields(), fields)

	in, fields, err = decodeRouteInput([]byte(`{"criteria":[{"criterion_id":3,"value":"v"}]}`), false)
	require.NoError(t, err)
	require.True(t, fields.Criteria)
	require.False(t, fields.Name)
	require.Len(t, in.Criteria, 1)
	require.Equal(t, uint(3), in.Criteria[0].CriterionID)
	require.NotNil(t, in.Criteria[0].Value)
	require.Equal(t, "v", *in.Criteria[0].Value)

	in, _, err = decodeRouteInput([]byte(`{"criteria":[{"criterion_id":3}]}`), false)
	require.NoError(t, err)
	require.Nil(t, in.Criteria[0].Value)
}

func TestDecodeRouteInputRejects(t *testing.T) {
	for _, raw := range []string{``, `null`, `[]`, `{"places":"a"}`, `{"name":5}`, `{"criteria":[{"criterion_id":"x"}]}`} {
		_, _, err := decodeRouteInput([]byte(raw), false)
		require.True(t, errors.Is(err, services.ErrValidation), "body %q: %v", raw, err)
	}
}
