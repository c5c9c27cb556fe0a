// Package throttleio 提供按字节限速的streamio适配器, 每个字节消耗一个令牌.
package throttleio

import (
	"fmt"
	"time"

	"github.com/juju/ratelimit"
	"github.com/rs/zerolog/log"

	streamio "github.com/usherasnick/Useful-Go-Gadgets/stream-io"
)

type realClock struct{}

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// limiter 从令牌桶中取令牌, 令牌不足时等待.
type limiter struct {
	bucket *ratelimit.Bucket
	clock  ratelimit.Clock
	op     string
}

func newLimiter(op string, rate float64, capacity int64, clock ratelimit.Clock) (*limiter, error) {
	if rate <= 0 || capacity <= 0 {
		return nil, streamio.NewError(streamio.InvalidInput,
			fmt.Errorf("invalid throttle, Rate(%v) Capacity(%v)", rate, capacity))
	}
	return &limiter{
		bucket: ratelimit.NewBucketWithRateAndClock(rate, capacity, clock),
		clock:  clock,
		op:     op,
	}, nil
}

// clamp 单次最多处理capacity字节.
func (l *limiter) clamp(p []byte) []byte {
	if c := l.bucket.Capacity(); int64(len(p)) > c {
		return p[:c]
	}
	return p
}

// take 从令牌桶中取n个令牌, 如果当前无可用令牌, 等待直到出现可用令牌.
func (l *limiter) take(n int) {
	if n <= 0 {
		return
	}
	waitUntilAvailable := l.bucket.Take(int64(n))
	if waitUntilAvailable != 0 {
		log.Debug().Str("op", l.op).Int("bytes", n).
			Msgf("rate limit exceeds, wait %s until tokens turn to be available", waitUntilAvailable.String())
		l.clock.Sleep(waitUntilAvailable)
	}
}

// Writer 限速写入.
type Writer struct {
	w   streamio.Writer
	lim *limiter
}

// NewWriter 返回Writer实例, rate为每秒字节数, capacity为突发上限以及单次写入上限.
func NewWriter(w streamio.Writer, rate float64, capacity int64) (*Writer, error) {
	return newWriter(w, rate, capacity, realClock{})
}

func newWriter(w streamio.Writer, rate float64, capacity int64, clock ratelimit.Clock) (*Writer, error) {
	lim, err := newLimiter("write", rate, capacity, clock)
	if err != nil {
		return nil, err
	}
	return &Writer{w: w, lim: lim}, nil
}

// Write 先等待令牌, 再写入最多capacity字节.
func (t *Writer) Write(p []byte) (int, error) {
	p = t.lim.clamp(p)
	t.lim.take(len(p))
	return t.w.Write(p)
}

// Flush 刷新底层Writer, 不消耗令牌.
func (t *Writer) Flush() error {
	return t.w.Flush()
}

// Reader 限速读取.
type Reader struct {
	r   streamio.Reader
	lim *limiter
}

// NewReader 返回Reader实例, rate为每秒字节数, capacity为突发上限以及单次读取上限.
func NewReader(r streamio.Reader, rate float64, capacity int64) (*Reader, error) {
	return newReader(r, rate, capacity, realClock{})
}

func newReader(r streamio.Reader, rate float64, capacity int64, clock ratelimit.Clock) (*Reader, error) {
	lim, err := newLimiter("read", rate, capacity, clock)
	if err != nil {
		return nil, err
	}
	return &Reader{r: r, lim: lim}, nil
}

// Read 读取最多capacity字节, 再为实际读到的字节等待令牌.
func (t *Reader) Read(p []byte) (int, error) {
	n, err := t.r.Read(t.lim.clamp(p))
	t.lim.take(n)
	return n, err
}
