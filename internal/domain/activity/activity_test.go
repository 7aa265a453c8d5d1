package activity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewActivity(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates record with object references", func(t *testing.T) {
		act, err := NewActivity(tenantID, ActionCreated, "client order", []string{"A1B2C3D4", "Projector"})
		require.NoError(t, err)

		assert.Equal(t, tenantID, act.TenantID)
		assert.Equal(t, ActionCreated, act.Action)
		assert.Equal(t, "client order", act.ModelName)
		assert.Equal(t, []string{"A1B2C3D4", "Projector"}, []string(act.ObjectRef))
	})

	t.Run("fails with unknown action", func(t *testing.T) {
		_, err := NewActivity(tenantID, Action("archived"), "item", []string{"Projector"})
		require.Error(t, err)
	})

	t.Run("fails without model name", func(t *testing.T) {
		_, err := NewActivity(tenantID, ActionDeleted, "", []string{"Projector"})
		require.Error(t, err)
	})

	t.Run("fails without references", func(t *testing.T) {
		_, err := NewActivity(tenantID, ActionUpdated, "item", nil)
		require.Error(t, err)
	})
}
