package simconfig

import "time"

type Config struct {
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	Sim        SimConfig        `yaml:"sim" mapstructure:"sim"`
	Geo        GeoConfig        `yaml:"geo" mapstructure:"geo"`
	Storage    StorageConfig    `yaml:"storage" mapstructure:"storage"`
	HTTPServer HTTPServerConfig `yaml:"httpserver" mapstructure:"httpserver"`
	Logic      LogicConfig      `yaml:"logic" mapstructure:"logic"`
}

type LogConfig struct {
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"` // days
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Level      string `yaml:"level" mapstructure:"level"` // debug/info/warn/error...
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
}

// SimConfig 战斗结算参数，watch=true 时支持热更新。
type SimConfig struct {
	Watch          bool    `yaml:"watch" mapstructure:"watch"`
	DamageScale    float64 `yaml:"damage_scale" mapstructure:"damage_scale"`
	CaptureRatio   float64 `yaml:"capture_ratio" mapstructure:"capture_ratio"`
	MilitiaDefense float64 `yaml:"militia_defense" mapstructure:"militia_defense"`
	// 受到伤害时的士气惩罚（sufferDefeat 的 s）
	DefeatSeverity float64 `yaml:"defeat_severity" mapstructure:"defeat_severity"`
	// 占领城市后的胜利动量（addVictoryMomentum 的 a）
	VictoryMomentum float64          `yaml:"victory_momentum" mapstructure:"victory_momentum"`
	Rules           []ConclusionRule `yaml:"rules" mapstructure:"rules"`
}

// ConclusionRule 一条结束战争的条件，When 是 expr 表达式，返回 bool。
type ConclusionRule struct {
	Name string `yaml:"name" mapstructure:"name"`
	When string `yaml:"when" mapstructure:"when"`
}

type GeoConfig struct {
	AtlasPath         string  `yaml:"atlas_path" mapstructure:"atlas_path"`
	AttackDistance    float64 `yaml:"attack_distance" mapstructure:"attack_distance"`
	FrontierTolerance float64 `yaml:"frontier_tolerance" mapstructure:"frontier_tolerance"`
}

const (
	DriverMemory  = "memory"
	DriverMongoDB = "mongodb"
	DriverMySQL   = "mysql"
)

type StorageConfig struct {
	Driver  string        `yaml:"driver" mapstructure:"driver"`
	MongoDB MongoDBConfig `yaml:"mongodb" mapstructure:"mongodb"`
	MySQL   MySQLConfig   `yaml:"mysql" mapstructure:"mysql"`
}

type MongoDBConfig struct {
	URI         string        `yaml:"uri" mapstructure:"uri"`
	Database    string        `yaml:"database" mapstructure:"database"`
	Collection  string        `yaml:"collection" mapstructure:"collection"`
	ConnTimeout time.Duration `yaml:"conn_timeout" mapstructure:"conn_timeout"`
}

type MySQLConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	DBName   string `yaml:"dbname" mapstructure:"dbname"`
	Charset  string `yaml:"charset" mapstructure:"charset"`
	MaxIdle  int    `yaml:"max_idle" mapstructure:"max_idle"`
	MaxConn  int    `yaml:"max_conn" mapstructure:"max_conn"`
	ShowSQL  bool   `yaml:"show_sql" mapstructure:"show_sql"`
}

type HTTPServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
}

type LogicConfig struct {
	ServerID int `yaml:"server_id" mapstructure:"server_id"`
	// serve 模式下自动推进回合的间隔，0 表示只接受手动推进
	TickInterval time.Duration `yaml:"tick_interval" mapstructure:"tick_interval"`
	AskTimeout   time.Duration `yaml:"ask_timeout" mapstructure:"ask_timeout"`
}
