package config

const (
	// DefaultConfigPath is the standard location for the shieldevt configuration file.
	// DefaultConfigPath 是 shieldevt 配置文件的标准位置。
	DefaultConfigPath = "/etc/shieldevt/config.yaml"

	// DefaultLogPath is used when file logging is enabled without a path.
	// DefaultLogPath 是启用文件日志但未指定路径时使用的位置。
	DefaultLogPath = "/var/log/shieldevt/shieldevt.log"

	// DefaultMaxLineBytes caps a single input line (1 MiB).
	// DefaultMaxLineBytes 限制单行输入的最大长度（1 MiB）。
	DefaultMaxLineBytes = 1 << 20

	// LocalTimezone selects the process local zone for timestamp derivation.
	// LocalTimezone 表示使用进程本地时区派生时间戳。
	LocalTimezone = "Local"

	DefaultMetricsJob = "shieldevt"
)

// DefaultConfigTemplate documents every option with its default value.
// DefaultConfigTemplate 列出所有配置项及其默认值。
const DefaultConfigTemplate = `# shieldevt configuration
logging:
  enabled: false          # write logs to a rotated file instead of stderr
  level: "info"           # debug, info, warn, error
  path: "/var/log/shieldevt/shieldevt.log"
  max_size: 10            # MB before rotation
  max_backups: 3
  max_age: 30             # days
  compress: true

converter:
  timezone: "Local"       # IANA zone used to read event timestamps, e.g. "America/New_York"
  max_line_bytes: 1048576

follow:
  poll: false             # poll instead of inotify
  reopen: true            # reopen the input after log rotation

metrics:
  enabled: false
  textfile_path: ""       # node_exporter textfile collector target
  push_gateway_addr: ""   # e.g. http://pushgateway:9091
  job: "shieldevt"
`
