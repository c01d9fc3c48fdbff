package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, ":8080", cfg.EndpointAddr)
	assert.NotEmpty(t, cfg.DatabaseDSN)
	assert.Equal(t, 30*time.Minute, cfg.TokenValidityDuration)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 5*time.Second, cfg.QueryTimeout)
}

func TestJsonConfig_Unmarshal(t *testing.T) {
	t.Parallel()

	raw := `{
		"endpoint_addr": ":9090",
		"database_dsn": "postgres://u:p@h:5432/db",
		"secret_key": "k",
		"token_validity_duration": "45m",
		"bcrypt_cost": 12,
		"query_timeout": "3s",
		"s3_bucket": "pics"
	}`

	c := &JsonConfig{}
	require.NoError(t, json.Unmarshal([]byte(raw), c))

	assert.Equal(t, ":9090", c.EndpointAddr)
	assert.Equal(t, 45*time.Minute, time.Duration(c.TokenValidityDuration.Duration))
	assert.Equal(t, 12, c.BcryptCost)
	assert.Equal(t, 3*time.Second, time.Duration(c.QueryTimeout.Duration))
	assert.Equal(t, "pics", c.S3Bucket)
}
