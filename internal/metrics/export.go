package metrics

import (
	"bytes"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/prometheus/common/expfmt"
	"go.uber.org/zap"

	"github.com/livp123/shieldevt/internal/utils/fileutil"
)

// ExportConfig selects where collected metrics are delivered after a run.
// ExportConfig 指定运行结束后指标的输出位置。
type ExportConfig struct {
	TextfilePath    string
	PushGatewayAddr string
	Job             string
}

// WriteTextfile encodes g in the Prometheus text format and atomically replaces path.
// WriteTextfile 以 Prometheus 文本格式编码 g，并原子替换 path。
func WriteTextfile(path string, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, expfmt.Format("text/plain; version=0.0.4"))
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}
	return fileutil.AtomicWriteFile(path, buf.Bytes(), 0644)
}

// Push sends g to a Prometheus Pushgateway under job.
// Push 将 g 推送到 Pushgateway 的 job 分组下。
func Push(addr, job string, g prometheus.Gatherer) error {
	return push.New(addr, job).Gatherer(g).Push()
}

// Export delivers c to every configured destination. Failures are logged and the last
// one returned; a metrics failure never undoes a finished conversion.
// Export 将 c 输出到所有已配置的位置。失败会被记录，并返回最后一个错误。
func Export(cfg ExportConfig, c *Collector, log *zap.SugaredLogger) error {
	var lastErr error

	if cfg.TextfilePath != "" {
		if err := WriteTextfile(cfg.TextfilePath, c.Gatherer()); err != nil {
			log.Errorf("[ERROR] Failed to write metrics textfile %s: %v", cfg.TextfilePath, err)
			lastErr = err
		} else {
			log.Debugf("[METRICS] Wrote %s", cfg.TextfilePath)
		}
	}

	if cfg.PushGatewayAddr != "" {
		if err := Push(cfg.PushGatewayAddr, cfg.Job, c.Gatherer()); err != nil {
			log.Errorf("[ERROR] Could not push to Pushgateway %s: %v", cfg.PushGatewayAddr, err)
			lastErr = err
		} else {
			log.Debugf("[METRICS] Pushed to %s (job %s)", cfg.PushGatewayAddr, cfg.Job)
		}
	}

	return lastErr
}
