package audit

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"go-rbac-api/internal/domain"
	"go-rbac-api/pkg/utils"
)

// Recorder 追加审计记录。写失败只打日志，绝不拖垮主操作。
type Recorder struct {
	repo domain.AuditLogRepository
	log  *zap.Logger
	wg   sync.WaitGroup
}

func NewRecorder(repo domain.AuditLogRepository, log *zap.Logger) *Recorder {
	return &Recorder{repo: repo, log: log}
}

// Record fire-and-forget；PerformedAt 由服务端赋值
func (r *Recorder) Record(action, performedBy, targetResource string) {
	entry := &domain.AuditLog{
		ID:             utils.NewID(),
		Action:         action,
		PerformedBy:    performedBy,
		PerformedAt:    time.Now().UTC(),
		TargetResource: targetResource,
	}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if err := r.repo.Append(entry); err != nil {
			r.log.Warn("audit append failed",
				zap.String("action", action),
				zap.String("target", targetResource),
				zap.Error(err),
			)
		}
	}()
}

// Wait 等在途写入落盘；优雅关闭时调用
func (r *Recorder) Wait() { r.wg.Wait() }
