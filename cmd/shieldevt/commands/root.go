package commands

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/livp123/shieldevt/internal/app"
	"github.com/livp123/shieldevt/internal/cli"
	"github.com/livp123/shieldevt/internal/config"
	"github.com/livp123/shieldevt/internal/utils/logger"
	"github.com/livp123/shieldevt/pkg/errors"
)

// Exit codes.
// 退出码。
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// syntaxMessage is printed after every usage error.
// syntaxMessage 在每次用法错误后打印。
const syntaxMessage = `shieldevt [-Flag <option> ...]
-i <inputfile>
-o <outputfile>
`

// NewRootCmd builds the shieldevt command tree.
// NewRootCmd 构建 shieldevt 命令树。
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "shieldevt [-Flag <option> ...]",
		Short: "Convert Salesforce Shield event logs for telemetry ingestion",
		// Short: 将 Salesforce Shield 事件日志转换为遥测采集格式
		Long: `shieldevt is a Unix-style pipeline filter for Salesforce Shield event log CSV files.
It renames the "EVENT_TYPE" column to "eventType" and appends a "timestamp" column
holding the event time in epoch milliseconds. All other fields pass through untouched.
shieldevt 是一个 Unix 风格的管道过滤器，用于处理 Salesforce Shield 事件日志 CSV：
将 "EVENT_TYPE" 列重命名为 "eventType"，并追加以 Unix 毫秒表示的 "timestamp" 列。`,
		Example: `  shieldevt -i EventLog.csv -o converted.csv
  shieldevt < EventLog.csv > converted.csv
  shieldevt -f -i /var/log/shield/Logout.csv --tz America/New_York`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runConvert,
	}

	cli.Register(rootCmd.Flags())
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return cli.FlagError(err)
	})

	// Help goes to stderr; stdout carries converted data
	// 帮助信息写入 stderr，stdout 用于输出转换结果
	defaultHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(c *cobra.Command, args []string) {
		c.SetOut(c.ErrOrStderr())
		defaultHelp(c, args)
	})

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newInitCmd())

	// Disable completion; a pipeline filter has nothing to complete
	// 禁用补全命令，管道过滤器无需补全
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	return rootCmd
}

func runConvert(cmd *cobra.Command, args []string) error {
	opts, err := cli.FromFlags(cmd.Flags())
	if err != nil {
		return err
	}
	if opts.ShowHelp {
		return cmd.Help()
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	// Logs never go to stdout, which carries the converted data
	// 日志不写入 stdout，stdout 用于输出转换结果
	logger.Console = cmd.ErrOrStderr()
	logger.Init(cfg.Logging)
	defer logger.Sync()

	log := logger.Get(nil)
	for _, arg := range args {
		log.Warnf("[WARN]  Ignoring argument %q", arg)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithContext(ctx, log)

	_, err = app.Convert(ctx, opts, cfg, app.Streams{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()})
	return err
}

// loadConfig loads the configuration file and applies command-line overrides.
// loadConfig 加载配置文件并应用命令行覆盖项。
func loadConfig(opts cli.Options) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	if opts.Timezone != "" {
		cfg.Converter.Timezone = opts.Timezone
	}
	if opts.MetricsFile != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.TextfilePath = opts.MetricsFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Run executes the command line and returns the process exit code.
// Run 执行命令行并返回进程退出码。
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if err == nil {
		return ExitOK
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	if errors.IsUsage(err) {
		fmt.Fprint(stderr, syntaxMessage)
		return ExitUsage
	}
	return ExitFailure
}

func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
