package dc

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"ArmsDealer/internal/war/app/port"
	"ArmsDealer/internal/war/entity"
	"ArmsDealer/modules/kit/errx"
	"ArmsDealer/modules/kit/logx"
)

const (
	defaultRetryDelay  = 200 * time.Millisecond
	defaultSaveTimeout = 5 * time.Second
	// 关闭时每份报告最多再试几次，避免存储挂掉时 Close 卡死
	closeRetries = 3
)

// ReportDC 回合报告的异步写入：Publish 只入队，writer goroutine 按回合顺序落库，失败重试。
type ReportDC struct {
	repo       port.ReportRepository
	log        logx.Logger
	retryDelay time.Duration

	mu      sync.Mutex
	pending []*entity.TurnReport
	closed  bool
	saved   int

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

type Option func(*ReportDC)

// WithRetryDelay 写失败后的重试间隔。
func WithRetryDelay(d time.Duration) Option {
	return func(dc *ReportDC) {
		if d > 0 {
			dc.retryDelay = d
		}
	}
}

func NewReportDC(repo port.ReportRepository, log logx.Logger, opts ...Option) *ReportDC {
	if log == nil {
		log = logx.Nop()
	}
	d := &ReportDC{
		repo:       repo,
		log:        log,
		retryDelay: defaultRetryDelay,
		wake:       make(chan struct{}, 1),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	go d.writerLoop()
	return d
}

// Publish 同一回合的新报告覆盖队列里尚未写入的旧报告。
func (d *ReportDC) Publish(ctx context.Context, r *entity.TurnReport) error {
	if r == nil {
		return nil
	}
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return errx.ErrUnavailable.WithData("component", "report_dc").WithData("turn", r.Turn)
	}
	replaced := false
	for i, p := range d.pending {
		if p.Turn == r.Turn {
			d.pending[i] = r
			replaced = true
			break
		}
	}
	if !replaced {
		d.pending = append(d.pending, r)
	}
	d.mu.Unlock()

	d.signal()
	return nil
}

// LoadTurn 先查队列再查仓库，刚结算完还没落库的回合也能读到。
func (d *ReportDC) LoadTurn(ctx context.Context, turn int) (*entity.TurnReport, error) {
	d.mu.Lock()
	for _, p := range d.pending {
		if p.Turn == turn {
			d.mu.Unlock()
			return p, nil
		}
	}
	d.mu.Unlock()
	return d.repo.LoadTurn(ctx, turn)
}

// Pending 尚未落库的报告数。
func (d *ReportDC) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// Saved 已成功落库的报告数。
func (d *ReportDC) Saved() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.saved
}

// Close 停止接收并等待队列写完，ctx 超时则直接返回。
func (d *ReportDC) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.stop)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *ReportDC) signal() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *ReportDC) peek() *entity.TurnReport {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.pending) == 0 {
		return nil
	}
	return d.pending[0]
}

// ack 写成功后出队；写入期间同一回合被覆盖时保留新的。
func (d *ReportDC) ack(r *entity.TurnReport) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.saved++
	if len(d.pending) > 0 && d.pending[0] == r {
		d.pending = d.pending[1:]
	}
}

func (d *ReportDC) drop(r *entity.TurnReport) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.pending) > 0 && d.pending[0] == r {
		d.pending = d.pending[1:]
	}
}

func (d *ReportDC) writerLoop() {
	defer close(d.done)

	for {
		select {
		case <-d.wake:
			d.consumePending(false)
		case <-d.stop:
			d.consumePending(true)
			return
		}
	}
}

func (d *ReportDC) consumePending(closing bool) {
	failures := 0
	for {
		r := d.peek()
		if r == nil {
			return
		}
		if err := d.save(r); err != nil {
			failures++
			logx.ReportSysErrorWithLoggerContext(context.Background(), d.log, logx.NewSysLog("save_turn_report", err),
				zap.Int("turn", r.Turn),
				zap.Int("failures", failures),
			)
			if closing && failures >= closeRetries {
				d.drop(r)
				failures = 0
				continue
			}
			select {
			case <-time.After(d.retryDelay):
			case <-d.stopped(closing):
				// 收到关闭信号，进入关闭模式继续写
				closing = true
			}
			continue
		}
		failures = 0
		d.ack(r)
	}
}

// stopped 关闭模式下返回 nil channel，select 只等重试间隔。
func (d *ReportDC) stopped(closing bool) <-chan struct{} {
	if closing {
		return nil
	}
	return d.stop
}

func (d *ReportDC) save(r *entity.TurnReport) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultSaveTimeout)
	defer cancel()
	return d.repo.Save(ctx, r)
}
