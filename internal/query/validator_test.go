package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibesql/pgq/internal/postgres"
)

func TestValidateQuery(t *testing.T) {
	tests := []struct {
		name    string
		sql     string
		wantErr bool
	}{
		{name: "empty", sql: "", wantErr: true},
		{name: "whitespace only", sql: " \n\t ", wantErr: true},
		{name: "select", sql: "SELECT 1"},
		{name: "syntax is not checked", sql: "SELEC 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuery(tt.sql)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, postgres.IsCode(err, postgres.ErrorCodeInvalidArgument))
		})
	}
}
