package bufferqueue

import (
	"github.com/gammazero/deque"
)

const defaultMaxChunk = 128

// ChunkQueue 是字节块组成的FIFO队列, 写入端按块追加, 读取端按块消费.
//
// ChunkQueue同时满足streamio.Writer与streamio.BufReader, 写入永远不会失败.
// ChunkQueue不是并发安全的, 同一时刻只能由一个调用方使用.
type ChunkQueue struct {
	q        deque.Deque[[]byte]
	maxChunk int
	size     int
}

// NewChunkQueue 返回ChunkQueue实例, maxChunk为每个块的最大字节数.
func NewChunkQueue(maxChunk int) *ChunkQueue {
	if maxChunk <= 0 {
		maxChunk = defaultMaxChunk
	}
	return &ChunkQueue{
		maxChunk: maxChunk,
	}
}

// Write 将p拷贝进队列, 优先填满队尾块的剩余空间.
func (q *ChunkQueue) Write(p []byte) (int, error) {
	n := len(p)
	for len(p) > 0 {
		if q.q.Len() > 0 {
			back := q.q.Back()
			if room := cap(back) - len(back); room > 0 {
				if room > len(p) {
					room = len(p)
				}
				q.q.Set(q.q.Len()-1, append(back, p[:room]...))
				p = p[room:]
				continue
			}
		}
		q.q.PushBack(make([]byte, 0, q.maxChunk))
	}
	q.size += n
	return n, nil
}

// Flush does nothing; written bytes are readable immediately.
func (q *ChunkQueue) Flush() error {
	return nil
}

// FillBuf 返回队首块中尚未消费的字节, 队列为空时返回空视图.
func (q *ChunkQueue) FillBuf() ([]byte, error) {
	for q.q.Len() > 0 {
		if front := q.q.Front(); len(front) > 0 {
			return front, nil
		}
		q.q.PopFront()
	}
	return nil, nil
}

// Consume 将队首块的读位置前移n字节, n不超过该块剩余字节数.
func (q *ChunkQueue) Consume(n int) {
	if q.q.Len() == 0 || n <= 0 {
		return
	}
	front := q.q.Front()
	if n > len(front) {
		n = len(front)
	}
	q.size -= n
	if n == len(front) {
		q.q.PopFront()
		return
	}
	q.q.Set(0, front[n:])
}

// Read 依次从各个块中拷贝数据到p, 队列为空时返回0.
func (q *ChunkQueue) Read(p []byte) (int, error) {
	read := 0
	for read < len(p) && q.q.Len() > 0 {
		front := q.q.Front()
		n := copy(p[read:], front)
		read += n
		if n == len(front) {
			q.q.PopFront()
		} else {
			q.q.Set(0, front[n:])
		}
	}
	q.size -= read
	return read, nil
}

// Len 返回队列中尚未消费的字节数.
func (q *ChunkQueue) Len() int {
	return q.size
}

// Chunks 返回队列中的块数量.
func (q *ChunkQueue) Chunks() int {
	return q.q.Len()
}
