package models

// MConfig Structure
type MConfig struct {
	Name       string            `yaml:"name"`
	LogLevel   string            `yaml:"log_level"`
	LogFile    string            `yaml:"log_file"`
	Server     MServerConfig     `yaml:"server"`
	Grpc       MGrpcConfig       `yaml:"grpc"`
	Storage    MStorageConfig    `yaml:"storage"`
	Network    MNetworkConfig    `yaml:"network"`
	DataSource MDataSourceConfig `yaml:"data_source"`
	UI         MUIConfig         `yaml:"ui"`
}

type MServerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}

type MGrpcConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}

type MStorageConfig struct {
	Enabled            bool   `yaml:"enabled"`
	DBType             string `yaml:"db_type"`
	DBPath             string `yaml:"db_path"`
	DBConnectionString string `yaml:"db_connection_string"`
}

type MNetworkConfig struct {
	Proxies          []string `yaml:"proxies"`
	RequestTimeout   int      `yaml:"timeout"`
	MaxRetries       int      `yaml:"retries"`
	RetryBaseDelayMs int      `yaml:"retry_base_delay_ms"`
	UserAgent        string   `yaml:"user_agent"`
}

type MDataSourceConfig struct {
	ConfirmedURL          string `yaml:"confirmed_url"`
	DeathsURL             string `yaml:"deaths_url"`
	RecoveredURL          string `yaml:"recovered_url"`
	HomeURL               string `yaml:"home_url"`
	UpdateIntervalSeconds int    `yaml:"update_interval_seconds"`
}

type MUIConfig struct {
	DefaultSort string `yaml:"default_sort"`
}
