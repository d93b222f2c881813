package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	ReadTimeout     time.Duration `mapstructure:"readTimeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"`
	AllowedOrigins  []string      `mapstructure:"allowedOrigins"`
}

type MongoConfig struct {
	URI    string `mapstructure:"uri"`
	DBName string `mapstructure:"dbName"`
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

type FabricConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	ChannelName       string `mapstructure:"channelName"`
	ChaincodeName     string `mapstructure:"chaincodeName"`
	OrgName           string `mapstructure:"orgName"`
	UserName          string `mapstructure:"userName"`
	ConnectionProfile string `mapstructure:"connectionProfile"`
	UserCertPath      string `mapstructure:"userCertPath"`
	UserKeyDir        string `mapstructure:"userKeyDir"`
	WalletPath        string `mapstructure:"walletPath"`
}

type S3Config struct {
	Enabled          bool   `mapstructure:"enabled"`
	Bucket           string `mapstructure:"bucket"`
	Region           string `mapstructure:"region"`
	AccessKeyID      string `mapstructure:"accessKeyID"`
	SecretAccessKey  string `mapstructure:"secretAccessKey"`
	CloudFrontDomain string `mapstructure:"cloudFrontDomain"`
	ReportPrefix     string `mapstructure:"reportPrefix"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// StoreConfig selects the persistence backend: "memory" or "mongo".
type StoreConfig struct {
	Driver string `mapstructure:"driver"`
	Seed   bool   `mapstructure:"seed"`
}

// PagesConfig is the page size of each list view.
type PagesConfig struct {
	InspectionQueue   int `mapstructure:"inspectionQueue"`
	Approvals         int `mapstructure:"approvals"`
	InspectionRecords int `mapstructure:"inspectionRecords"`
	CAPA              int `mapstructure:"capa"`
	StockAdjustments  int `mapstructure:"stockAdjustments"`
	StockMovements    int `mapstructure:"stockMovements"`
	ProductionIntake  int `mapstructure:"productionIntake"`
}

type QAConfig struct {
	RequireOverrideRemarks bool `mapstructure:"requireOverrideRemarks"`
}

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Mongo  MongoConfig  `mapstructure:"mongo"`
	JWT    JWTConfig    `mapstructure:"jwt"`
	Fabric FabricConfig `mapstructure:"fabric"`
	S3     S3Config     `mapstructure:"s3"`
	Log    LogConfig    `mapstructure:"log"`
	Store  StoreConfig  `mapstructure:"store"`
	Pages  PagesConfig  `mapstructure:"pages"`
	QA     QAConfig     `mapstructure:"qa"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.readTimeout", 15*time.Second)
	v.SetDefault("server.shutdownTimeout", 10*time.Second)
	v.SetDefault("server.allowedOrigins", []string{"*"})
	v.SetDefault("mongo.dbName", "qa_warehouse")
	v.SetDefault("jwt.expiration", 24*time.Hour)
	v.SetDefault("fabric.walletPath", "wallet")
	v.SetDefault("s3.reportPrefix", "reports")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("store.driver", "memory")
	v.SetDefault("store.seed", true)
	v.SetDefault("pages.inspectionQueue", 6)
	v.SetDefault("pages.approvals", 6)
	v.SetDefault("pages.inspectionRecords", 6)
	v.SetDefault("pages.capa", 6)
	v.SetDefault("pages.stockAdjustments", 6)
	v.SetDefault("pages.stockMovements", 7)
	v.SetDefault("pages.productionIntake", 6)
}

// LoadConfig reads config.yaml from path and overrides it from the environment.
// A missing file is not an error.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	setDefaults(v)

	v.AutomaticEnv()
	v.BindEnv("server.port", "SERVER_PORT")
	v.BindEnv("server.mode", "GIN_MODE")
	v.BindEnv("mongo.uri", "MONGO_URI")
	v.BindEnv("mongo.dbName", "MONGO_DBNAME")
	v.BindEnv("jwt.secret", "JWT_SECRET")
	v.BindEnv("jwt.expiration", "JWT_EXPIRATION")
	v.BindEnv("s3.enabled", "S3_ENABLED")
	v.BindEnv("s3.bucket", "S3_BUCKET")
	v.BindEnv("s3.region", "S3_REGION")
	v.BindEnv("s3.accessKeyID", "S3_ACCESS_KEY_ID")
	v.BindEnv("s3.secretAccessKey", "S3_SECRET_ACCESS_KEY")
	v.BindEnv("s3.cloudFrontDomain", "S3_CLOUDFRONT_DOMAIN")
	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("log.format", "LOG_FORMAT")
	v.BindEnv("store.driver", "STORE_DRIVER")
	v.BindEnv("store.seed", "STORE_SEED")
	v.BindEnv("qa.requireOverrideRemarks", "QA_REQUIRE_OVERRIDE_REMARKS")
	v.BindEnv("fabric.enabled", "FABRIC_ENABLED")

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
		err = nil
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}
	err = config.validate()
	return
}

func (c Config) validate() error {
	switch c.Store.Driver {
	case "memory":
	case "mongo":
		if c.Mongo.URI == "" {
			return errors.New("config: mongo.uri is required for the mongo store driver")
		}
	default:
		return errors.New("config: store.driver must be memory or mongo, got " + c.Store.Driver)
	}
	if c.JWT.Secret == "" {
		return errors.New("config: jwt.secret is required")
	}
	return nil
}
