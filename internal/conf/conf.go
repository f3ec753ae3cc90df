package conf

import (
	"encoding/json"
	"fmt"
	"time"
)

// Duration is a config-friendly wrapper around time.Duration.
// It accepts Go duration strings ("10m", "1h30m") and plain numbers
// (seconds) in YAML/JSON config sources.
type Duration time.Duration

// AsDuration returns the underlying time.Duration.
func (d Duration) AsDuration() time.Duration {
	return time.Duration(d)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value) * time.Second)
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value, err)
		}
		*d = Duration(parsed)
		return nil
	default:
		return fmt.Errorf("invalid duration value: %v", v)
	}
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Bootstrap is the root configuration scanned from the config source.
type Bootstrap struct {
	Server   *Server   `json:"server"`
	Data     *Data     `json:"data"`
	Rocketmq *RocketMQ `json:"rocketmq"`
}

// Server holds transport server configuration.
type Server struct {
	HTTP *ServerHTTP `json:"http"`
	GRPC *ServerGRPC `json:"grpc"`
}

// ServerHTTP holds HTTP server configuration.
type ServerHTTP struct {
	Network string   `json:"network"`
	Addr    string   `json:"addr"`
	Timeout Duration `json:"timeout"`
}

// ServerGRPC holds gRPC server configuration.
type ServerGRPC struct {
	Network string   `json:"network"`
	Addr    string   `json:"addr"`
	Timeout Duration `json:"timeout"`
}

// Data holds data layer configuration.
type Data struct {
	Database *Database `json:"database"`
	Redis    *Redis    `json:"redis"`
	Cache    *Cache    `json:"cache"`
}

// Database holds relational database configuration.
type Database struct {
	Driver          string   `json:"driver"` // "postgres" (default) or "mysql"
	Username        string   `json:"username"`
	Password        string   `json:"password"`
	Host            string   `json:"host"`
	Port            int32    `json:"port"`
	DbName          string   `json:"db_name"`
	MaxIdleConns    int32    `json:"max_idle_conns"`
	MaxOpenConns    int32    `json:"max_open_conns"`
	DbCharset       string   `json:"db_charset"`
	SslMode         string   `json:"ssl_mode"`
	ConnMaxLifetime Duration `json:"conn_max_lifetime"`
	ConnMaxIdleTime Duration `json:"conn_max_idle_time"`
}

// Redis holds redis configuration.
type Redis struct {
	Addr         string   `json:"addr"`
	Password     string   `json:"password"`
	Db           int32    `json:"db"`
	DialTimeout  Duration `json:"dial_timeout"`
	ReadTimeout  Duration `json:"read_timeout"`
	WriteTimeout Duration `json:"write_timeout"`
}

// Cache holds query cache configuration.
type Cache struct {
	// TTL bounds how stale a cached dashboard response may get.
	TTL       Duration `json:"ttl"`
	KeyPrefix string   `json:"key_prefix"`
	// WarmInterval is how often the dimension warm job refreshes the
	// cached filter dimensions. Negative disables the job.
	WarmInterval Duration `json:"warm_interval"`
}

// DefaultCacheTTL matches the 10-minute staleness window the dashboard
// has always accepted.
const DefaultCacheTTL = 10 * time.Minute

// GetTTL returns the cache TTL, defaulting to DefaultCacheTTL.
func (c *Cache) GetTTL() time.Duration {
	if c == nil || c.TTL == 0 {
		return DefaultCacheTTL
	}
	return c.TTL.AsDuration()
}

// GetKeyPrefix returns the cache key prefix, defaulting to "retailpulse".
func (c *Cache) GetKeyPrefix() string {
	if c == nil || c.KeyPrefix == "" {
		return "retailpulse"
	}
	return c.KeyPrefix
}

// GetWarmInterval returns the warm job interval, defaulting to five
// minutes. A negative value disables the warm job.
func (c *Cache) GetWarmInterval() time.Duration {
	if c == nil || c.WarmInterval == 0 {
		return 5 * time.Minute
	}
	return c.WarmInterval.AsDuration()
}

// RocketMQ holds RocketMQ client configuration.
// A nil or endpoint-less config disables the ingest path entirely.
type RocketMQ struct {
	NameServers   string   `json:"name_servers"`
	AccessKey     string   `json:"access_key"`
	SecretKey     string   `json:"secret_key"`
	ProducerGroup string   `json:"producer_group"`
	ConsumerGroup string   `json:"consumer_group"`
	SaleTopic     string   `json:"sale_topic"`
	SendTimeout   Duration `json:"send_timeout"`
	RetryTimes    int32    `json:"retry_times"`
	EnableSsl     bool     `json:"enable_ssl"`
}

// Enabled reports whether a usable RocketMQ endpoint is configured.
func (c *RocketMQ) Enabled() bool {
	return c != nil && c.NameServers != ""
}

// GetSaleTopic returns the sale event topic, defaulting to
// "retail.sale.recorded".
func (c *RocketMQ) GetSaleTopic() string {
	if c == nil || c.SaleTopic == "" {
		return "retail.sale.recorded"
	}
	return c.SaleTopic
}

// GetConsumerGroup returns the ingest consumer group, defaulting to
// "retail-pulse-ingest".
func (c *RocketMQ) GetConsumerGroup() string {
	if c == nil || c.ConsumerGroup == "" {
		return "retail-pulse-ingest"
	}
	return c.ConsumerGroup
}
