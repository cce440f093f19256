package cli

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/livp123/shieldevt/pkg/errors"
)

// Flag names.
// 标志名称。
const (
	InputFlag       = "input"
	OutputFlag      = "output"
	HelpFlag        = "help"
	ConfigFlag      = "config"
	FollowFlag      = "follow"
	TimezoneFlag    = "tz"
	MetricsFileFlag = "metrics-file"
)

// Options is the parsed command line, consumed once before conversion starts.
// An empty path selects the matching standard stream.
// Options 是解析后的命令行参数，在转换开始前使用一次。路径为空表示使用对应的标准流。
type Options struct {
	InputPath  string
	OutputPath string
	ShowHelp   bool

	ConfigPath  string
	Follow      bool
	Timezone    string
	MetricsFile string
}

// Register defines the conversion flags on fs. The help flag is left to cobra.
// Register 在 fs 上定义转换相关标志，help 标志由 cobra 提供。
func Register(fs *pflag.FlagSet) {
	fs.StringP(InputFlag, "i", "", "Input event log file (default: standard input)")
	fs.StringP(OutputFlag, "o", "", "Output file (default: standard output)")
	fs.StringP(ConfigFlag, "c", "", "Path to configuration file (default: /etc/shieldevt/config.yaml if present)")
	fs.BoolP(FollowFlag, "f", false, "Keep following the input file for appended lines (requires -i)")
	fs.String(TimezoneFlag, "", "IANA time zone used to read event timestamps (overrides converter.timezone)")
	fs.String(MetricsFileFlag, "", "Write Prometheus textfile metrics here after the run")
}

// FromFlags builds Options from a parsed flag set. A value that looks like a flag
// (for example "-i -z") is rejected as a usage error.
// FromFlags 从已解析的标志集构建 Options，形如标志的取值（如 "-i -z"）视为用法错误。
func FromFlags(fs *pflag.FlagSet) (Options, error) {
	var opts Options

	valueFlags := []struct {
		name   string
		target *string
	}{
		{InputFlag, &opts.InputPath},
		{OutputFlag, &opts.OutputPath},
		{ConfigFlag, &opts.ConfigPath},
		{TimezoneFlag, &opts.Timezone},
		{MetricsFileFlag, &opts.MetricsFile},
	}
	for _, vf := range valueFlags {
		value, err := fs.GetString(vf.name)
		if err != nil {
			return Options{}, errors.NewInvalidFlagError(err)
		}
		if fs.Changed(vf.name) {
			if value == "" {
				return Options{}, errors.NewMissingValueError(flagName(fs, vf.name))
			}
			if isFlag(value) {
				return Options{}, errors.NewExpectedValueError(value)
			}
		}
		*vf.target = value
	}

	if fs.Lookup(FollowFlag) != nil {
		opts.Follow, _ = fs.GetBool(FollowFlag)
	}
	if fs.Lookup(HelpFlag) != nil {
		opts.ShowHelp, _ = fs.GetBool(HelpFlag)
	}

	if opts.Follow && opts.InputPath == "" {
		return Options{}, errors.NewMissingValueError(flagName(fs, InputFlag) + " (required by --" + FollowFlag + ")")
	}
	return opts, nil
}

// FlagError turns a pflag parse failure into a usage error that carries the
// "Expected a value" wording for flags given without their value.
// FlagError 将 pflag 解析错误转换为用法错误。
func FlagError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.HasPrefix(msg, "flag needs an argument:") {
		return errors.NewMissingValueError(missingFlag(msg))
	}
	return errors.NewInvalidFlagError(err)
}

// missingFlag extracts the flag from pflag messages such as
// "flag needs an argument: 'i' in -i" and "flag needs an argument: --input".
func missingFlag(msg string) string {
	if idx := strings.LastIndex(msg, " in "); idx >= 0 {
		return msg[idx+len(" in "):]
	}
	return strings.TrimSpace(strings.TrimPrefix(msg, "flag needs an argument:"))
}

func flagName(fs *pflag.FlagSet, name string) string {
	if f := fs.Lookup(name); f != nil && f.Shorthand != "" {
		return "-" + f.Shorthand
	}
	return "--" + name
}

func isFlag(value string) bool {
	return strings.HasPrefix(value, "-")
}
