package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "MONGO_DATABASE", "PASSWORD_HASHING", "CORS_ALLOW_ORIGINS",
		"NOTIFY_TIMEOUT", "SMTP_HOST", "SMTP_PORT", "ALERT_FROM", "ALERT_TO", "MQTT_URL"} {
		t.Setenv(key, "")
	}
	t.Setenv("DB_DRIVER", "memory")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "memory", cfg.DBDriver)
	assert.Equal(t, "todos", cfg.MongoDatabase)
	assert.Equal(t, "plain", cfg.PasswordHashing)
	assert.Equal(t, "*", cfg.CORSAllowOrigins)
	assert.Equal(t, 10*time.Second, cfg.NotifyTimeout)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.False(t, cfg.SMTP.Enabled())
	assert.False(t, cfg.MQTT.Enabled())
}

func TestLoadRequiresDriverURI(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("POSTGRESQL_URI", "")
	_, err := Load()
	assert.ErrorContains(t, err, "POSTGRESQL_URI")

	t.Setenv("DB_DRIVER", "mongodb")
	t.Setenv("MONGO_URI", "")
	_, err = Load()
	assert.ErrorContains(t, err, "MONGO_URI")

	t.Setenv("DB_DRIVER", "sqlite")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoadMQTTURL(t *testing.T) {
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("NOTIFY_TIMEOUT", "")
	t.Setenv("SMTP_PORT", "")
	t.Setenv("MQTT_URL", "mqtt://bob:pw@broker.local:1883/alerts")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.MQTT.Enabled())
	assert.Equal(t, "tcp://broker.local:1883", cfg.MQTT.Broker)
	assert.Equal(t, "alerts", cfg.MQTT.Topic)
	assert.Equal(t, "bob", cfg.MQTT.Username)
	assert.Equal(t, "pw", cfg.MQTT.Password)

	t.Setenv("MQTT_URL", "mqtt://broker.local:1883")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "todos", cfg.MQTT.Topic)
}

func TestLoadInvalidNumbers(t *testing.T) {
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("MQTT_URL", "")
	t.Setenv("NOTIFY_TIMEOUT", "soon")
	_, err := Load()
	assert.ErrorContains(t, err, "NOTIFY_TIMEOUT")

	t.Setenv("NOTIFY_TIMEOUT", "1s")
	t.Setenv("SMTP_PORT", "smtp")
	_, err = Load()
	assert.ErrorContains(t, err, "SMTP_PORT")
}
