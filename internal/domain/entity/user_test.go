package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reconciliemos/cuentas-api/internal/domain"
	"github.com/reconciliemos/cuentas-api/internal/domain/entity"
)

func TestNormalizeSicac(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		sicac   string
		want    string
		wantErr bool
	}{
		{"conciliador con sicac", entity.RoleConciliador, "SIC-1", "SIC-1", false},
		{"conciliador sin sicac", entity.RoleConciliador, "", "", true},
		{"tercero con sicac se limpia", entity.RoleTercero, "SIC-1", "", false},
		{"tercero sin sicac", entity.RoleTercero, "", "", false},
		{"admin con sicac se limpia", entity.RoleAdmin, "SIC-1", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := entity.NormalizeSicac(tt.role, tt.sicac)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidacion)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidRole(t *testing.T) {
	assert.True(t, entity.ValidRole(entity.RoleAdmin))
	assert.True(t, entity.ValidRole(entity.RoleConciliador))
	assert.True(t, entity.ValidRole(entity.RoleTercero))
	assert.False(t, entity.ValidRole("bodeguero"))
	assert.False(t, entity.ValidRole(""))
}
