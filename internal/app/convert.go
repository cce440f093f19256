package app

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/livp123/shieldevt/internal/cli"
	"github.com/livp123/shieldevt/internal/config"
	"github.com/livp123/shieldevt/internal/converter"
	"github.com/livp123/shieldevt/internal/metrics"
	"github.com/livp123/shieldevt/internal/stream"
	"github.com/livp123/shieldevt/internal/utils/fmtutil"
	"github.com/livp123/shieldevt/internal/utils/logger"
	"github.com/livp123/shieldevt/pkg/errors"
)

// Streams are the standard streams used when no file is named.
// Streams 是未指定文件时使用的标准流。
type Streams struct {
	In  io.Reader
	Out io.Writer
}

type source interface {
	converter.LineSource
	io.Closer
	Name() string
}

/**
 * Convert resolves input and output, runs one conversion and exports metrics.
 * Both resources are acquired before the first line is transformed; the input is
 * opened first so a missing input never truncates an existing output file.
 * Convert 解析输入输出，执行一次转换并导出指标。
 * 两个资源都在转换第一行之前获取；先打开输入，避免输入缺失时截断已有的输出文件。
 */
func Convert(ctx context.Context, opts cli.Options, cfg *config.Config, std Streams) (converter.Stats, error) {
	log := logger.Get(ctx).With("run_id", uuid.NewString())

	loc, err := cfg.Converter.Location()
	if err != nil {
		return converter.Stats{}, errors.NewConfigError("converter.timezone", cfg.Converter.Timezone)
	}

	src, err := openSource(opts, cfg, std.In)
	if err != nil {
		return converter.Stats{}, err
	}
	defer src.Close()

	sink, err := stream.OpenSink(opts.OutputPath, std.Out, opts.Follow)
	if err != nil {
		return converter.Stats{}, err
	}

	collector := metrics.NewCollector()
	driver := converter.NewDriver(converter.New(loc),
		converter.WithObserver(collector),
		converter.WithLogger(log),
	)

	log.Infof("[CONVERT] %s -> %s (zone %s, follow %t)", src.Name(), sink.Name(), loc, opts.Follow)
	start := time.Now()
	stats, runErr := driver.Run(ctx, src, sink)
	collector.MarkRun(time.Now())

	if runErr != nil {
		log.Errorf("[ERROR] Conversion stopped after %d lines: %v", stats.Lines, runErr)
	} else {
		elapsed := time.Since(start)
		log.Infow("[CONVERT] Done: "+fmtutil.Summary(stats.Rows, stats.InvalidTimestamps, stats.Skipped, elapsed),
			"rows", stats.Rows,
			"invalid_timestamps", stats.InvalidTimestamps,
			"skipped", stats.Skipped,
			"header_renamed", stats.HeaderRenamed,
			"elapsed", elapsed,
		)
		if stats.InvalidTimestamps > 0 {
			log.Warnf("[WARN]  %d rows had no derivable timestamp and were written with 0", stats.InvalidTimestamps)
		}
	}

	// Metrics failures are logged by Export and do not fail a finished conversion.
	_ = metrics.Export(cfg.Metrics.ExportConfig(), collector, log)

	return stats, runErr
}

func openSource(opts cli.Options, cfg *config.Config, stdin io.Reader) (source, error) {
	if opts.Follow {
		src, err := stream.NewTailSource(opts.InputPath, cfg.Follow.FollowOptions())
		if err != nil {
			return nil, err
		}
		return src, nil
	}
	src, err := stream.OpenSource(opts.InputPath, stdin, cfg.Converter.MaxLineBytes)
	if err != nil {
		return nil, err
	}
	return src, nil
}
