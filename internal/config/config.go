// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/xkilldash9x/sifminer/internal/blacklist"
	"github.com/xkilldash9x/sifminer/internal/sif"
)

// Interface defines the contract for accessing application configuration.
// This allows for dependency injection and mocking in tests.
type Interface interface {
	Logger() LoggerConfig
	Search() SearchConfig
	Blacklist() BlacklistConfig
	Database() DatabaseConfig
	Neo4j() Neo4jConfig
	Server() ServerConfig

	// Search Setters
	SetSearchTypes(types []string)
	SetSearchConcurrency(int)
	SetSearchBlacklistFile(string)

	// Blacklist Setters
	SetBlacklistNeighborThreshold(int)
	SetBlacklistClusterNames(bool)
	SetBlacklistMappingFile(string)

	// Server Setters
	SetServerAddr(string)
}

// Config holds the entire application configuration.
type Config struct {
	LoggerCfg    LoggerConfig    `mapstructure:"logger" yaml:"logger"`
	SearchCfg    SearchConfig    `mapstructure:"search" yaml:"search"`
	BlacklistCfg BlacklistConfig `mapstructure:"blacklist" yaml:"blacklist"`
	DatabaseCfg  DatabaseConfig  `mapstructure:"database" yaml:"database"`
	Neo4jCfg     Neo4jConfig     `mapstructure:"neo4j" yaml:"neo4j"`
	ServerCfg    ServerConfig    `mapstructure:"server" yaml:"server"`
}

// --- Interface Method Implementations (Getters) ---

func (c *Config) Logger() LoggerConfig       { return c.LoggerCfg }
func (c *Config) Search() SearchConfig       { return c.SearchCfg }
func (c *Config) Blacklist() BlacklistConfig { return c.BlacklistCfg }
func (c *Config) Database() DatabaseConfig   { return c.DatabaseCfg }
func (c *Config) Neo4j() Neo4jConfig         { return c.Neo4jCfg }
func (c *Config) Server() ServerConfig       { return c.ServerCfg }

// --- Interface Method Implementations (Setters) ---

// Search Setters
func (c *Config) SetSearchTypes(types []string)   { c.SearchCfg.Types = types }
func (c *Config) SetSearchConcurrency(n int)      { c.SearchCfg.Concurrency = n }
func (c *Config) SetSearchBlacklistFile(p string) { c.SearchCfg.BlacklistFile = p }

// Blacklist Setters
func (c *Config) SetBlacklistNeighborThreshold(n int) { c.BlacklistCfg.NeighborThreshold = n }
func (c *Config) SetBlacklistClusterNames(b bool)     { c.BlacklistCfg.ClusterNames = b }
func (c *Config) SetBlacklistMappingFile(p string)    { c.BlacklistCfg.MappingFile = p }

// Server Setters
func (c *Config) SetServerAddr(addr string) { c.ServerCfg.Addr = addr }

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color codes for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// SearchConfig configures SIF extraction.
type SearchConfig struct {
	// Types restricts the output to these interaction types. Empty means all.
	Types            []string      `mapstructure:"types" yaml:"types"`
	Concurrency      int           `mapstructure:"concurrency" yaml:"concurrency"`
	BlacklistFile    string        `mapstructure:"blacklist_file" yaml:"blacklist_file"`
	ProgressInterval time.Duration `mapstructure:"progress_interval" yaml:"progress_interval"`
	ID               IDConfig      `mapstructure:"id" yaml:"id"`
}

// IDConfig selects how participants are named.
type IDConfig struct {
	SeqDBs     []string `mapstructure:"seq_dbs" yaml:"seq_dbs"`
	ChemDBs    []string `mapstructure:"chem_dbs" yaml:"chem_dbs"`
	UseName    bool     `mapstructure:"use_name" yaml:"use_name"`
	UseURI     bool     `mapstructure:"use_uri" yaml:"use_uri"`
	SymbolFile string   `mapstructure:"symbol_file" yaml:"symbol_file"`
}

// BlacklistConfig configures ubiquitous molecule detection.
type BlacklistConfig struct {
	NeighborThreshold int    `mapstructure:"neighbor_threshold" yaml:"neighbor_threshold"`
	ContextRatio      int    `mapstructure:"context_ratio" yaml:"context_ratio"`
	ClusterNames      bool   `mapstructure:"cluster_names" yaml:"cluster_names"`
	MappingFile       string `mapstructure:"mapping_file" yaml:"mapping_file"`
}

// Decider returns the ubiquity policy described by the configuration.
func (b BlacklistConfig) Decider() blacklist.DefaultDecider {
	return blacklist.DefaultDecider{Threshold: b.NeighborThreshold, Ratio: b.ContextRatio}
}

// DatabaseConfig holds the database connection details.
type DatabaseConfig struct {
	URL string `mapstructure:"url" yaml:"url"`
}

// Neo4jConfig holds the graph export connection details.
type Neo4jConfig struct {
	URI       string `mapstructure:"uri" yaml:"uri"`
	User      string `mapstructure:"user" yaml:"user"`
	Password  string `mapstructure:"password" yaml:"password"`
	Database  string `mapstructure:"database" yaml:"database"`
	BatchSize int    `mapstructure:"batch_size" yaml:"batch_size"`
}

// ServerConfig configures the HTTP query surface.
type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// This should not happen with defaults, but good to be safe.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for various configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "sifminer")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)

	// -- Search --
	v.SetDefault("search.types", []string{})
	v.SetDefault("search.concurrency", 1)
	v.SetDefault("search.blacklist_file", "")
	v.SetDefault("search.progress_interval", "2s")
	v.SetDefault("search.id.seq_dbs", []string{"hgnc symbol", "hgnc"})
	v.SetDefault("search.id.chem_dbs", []string{"chebi", "pubchem"})
	v.SetDefault("search.id.use_name", true)
	v.SetDefault("search.id.use_uri", false)
	v.SetDefault("search.id.symbol_file", "")

	// -- Blacklist --
	v.SetDefault("blacklist.neighbor_threshold", blacklist.DefaultThreshold)
	v.SetDefault("blacklist.context_ratio", blacklist.DefaultRatio)
	v.SetDefault("blacklist.cluster_names", false)
	v.SetDefault("blacklist.mapping_file", "")

	// -- Neo4j --
	v.SetDefault("neo4j.uri", "bolt://localhost:7687")
	v.SetDefault("neo4j.user", "neo4j")
	v.SetDefault("neo4j.database", "")
	v.SetDefault("neo4j.batch_size", 500)

	// -- Server --
	v.SetDefault("server.addr", ":8080")
}

// NewConfigFromViper creates a new configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config

	// Bind environment variables for sensitive data
	_ = v.BindEnv("database.url", "SIFMINER_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("neo4j.password", "SIFMINER_NEO4J_PASSWORD", "NEO4J_PASSWORD")

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.ExpandPaths(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// ExpandPaths resolves a leading "~" in every file setting.
func (c *Config) ExpandPaths() error {
	for _, p := range []*string{
		&c.LoggerCfg.LogFile,
		&c.SearchCfg.BlacklistFile,
		&c.SearchCfg.ID.SymbolFile,
		&c.BlacklistCfg.MappingFile,
	} {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("failed to expand path %q: %w", *p, err)
		}
		*p = expanded
	}
	return nil
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	if c.SearchCfg.Concurrency <= 0 {
		return fmt.Errorf("search.concurrency must be a positive integer")
	}
	if _, err := sif.ParseTypes(c.SearchCfg.Types); err != nil {
		return fmt.Errorf("search.types: %w", err)
	}
	if err := c.BlacklistCfg.Validate(); err != nil {
		return fmt.Errorf("blacklist configuration invalid: %w", err)
	}
	if c.Neo4jCfg.BatchSize <= 0 {
		return fmt.Errorf("neo4j.batch_size must be a positive integer")
	}
	return nil
}

// Validate checks the BlacklistConfig settings.
func (b *BlacklistConfig) Validate() error {
	if b.NeighborThreshold <= 0 {
		return fmt.Errorf("neighbor_threshold must be a positive integer")
	}
	if b.ContextRatio <= 0 {
		return fmt.Errorf("context_ratio must be a positive integer")
	}
	if b.MappingFile != "" && !b.ClusterNames {
		return errors.New("mapping_file requires cluster_names")
	}
	return nil
}
