package registry

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"climate-dashboard/internal/domain/entity"
)

func TestDefault(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	assert.Equal(t, []string{"Talus Renewables", "Amini.ai", "Mombak", "Moxair"}, reg.Names())
	assert.Equal(t, []string{"2023 Cohort", "2024 Cohort"}, reg.Groups())

	mombak, err := reg.Get("Mombak")
	require.NoError(t, err)
	assert.Equal(t, "Peter Fernandez", mombak.CEO)
	assert.Equal(t, "Mombak reforestation", mombak.Query())

	moxair, err := reg.Get("Moxair")
	require.NoError(t, err)
	assert.Equal(t, "Moxair", moxair.Query())
}

func TestGet_NotFound(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	_, err = reg.Get("Acme")
	require.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrNotFound))
}

func TestList_ReturnsCopy(t *testing.T) {
	reg, err := New([]entity.Company{{Name: "A"}, {Name: "B"}})
	require.NoError(t, err)

	list := reg.List()
	list[0].Name = "mutated"

	assert.Equal(t, "A", reg.List()[0].Name)
}

func TestNew_Rejects(t *testing.T) {
	tests := []struct {
		name      string
		companies []entity.Company
	}{
		{"empty roster", nil},
		{"blank name", []entity.Company{{Name: "A"}, {Name: "  "}}},
		{"duplicate name", []entity.Company{{Name: "A"}, {Name: "B"}, {Name: "A "}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := New(tt.companies)
			assert.Error(t, err)
			assert.Nil(t, reg)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yaml")
	doc := `companies:
  - name: Zeta
    group: B
  - name: Alpha
    group: A
  - name: Beta
    group: B
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	reg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Zeta", "Alpha", "Beta"}, reg.Names())
	assert.Equal(t, []string{"B", "A"}, reg.Groups())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("companies: [:"), 0o600))
	_, err = Load(path)
	assert.Error(t, err)
}
