package utils

import (
	"strconv"
	"sync"
	"time"

	"ArmsDealer/modules/kit/errx"
)

const (
	// 2024-01-01 00:00:00 UTC，毫秒
	snowflakeEpochMilli int64 = 1704067200000

	nodeBits uint8 = 10
	seqBits  uint8 = 12

	maxNodeID int64 = -1 ^ (-1 << nodeBits)
	maxSeq    int64 = -1 ^ (-1 << seqBits)

	nodeShift uint8 = seqBits
	timeShift uint8 = nodeBits + seqBits
)

// Snowflake 单机 id 生成器，node 取 logic.server_id。
type Snowflake struct {
	mu     sync.Mutex
	nodeID int64
	lastTS int64
	seq    int64
	now    func() int64
}

func NewSnowflake(nodeID int64) (*Snowflake, error) {
	if nodeID < 0 || nodeID > maxNodeID {
		return nil, errx.ErrInvalidConfig.WithData("field", "logic.server_id").WithData("value", nodeID)
	}
	return &Snowflake{nodeID: nodeID, now: func() int64 { return time.Now().UnixMilli() }}, nil
}

func (s *Snowflake) NextID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.now()
	if ts < s.lastTS {
		// 时钟回拨：沿用上一毫秒，保持单调
		ts = s.lastTS
	}
	if ts == s.lastTS {
		s.seq = (s.seq + 1) & maxSeq
		if s.seq == 0 {
			for ts <= s.lastTS {
				ts = s.now()
			}
		}
	} else {
		s.seq = 0
	}
	s.lastTS = ts
	return ((ts - snowflakeEpochMilli) << timeShift) | (s.nodeID << nodeShift) | s.seq
}

// NextString 带前缀的 36 进制 id，例如 "u-3f9k2..."。
func (s *Snowflake) NextString(prefix string) string {
	return prefix + strconv.FormatInt(s.NextID(), 36)
}
