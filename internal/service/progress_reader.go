package service

import (
	"context"
	"io"
)

// progressReader reports copy progress to redis as it is read from.
type progressReader struct {
	ctx      context.Context
	inner    io.Reader
	total    int64
	read     int64
	lastPct  int
	uploadID string
	svc      *ContentService
}

func (s *ContentService) newProgressReader(ctx context.Context, r io.Reader, total int64, uploadID string) io.Reader {
	if s.Redis == nil || uploadID == "" || total <= 0 {
		return r
	}
	return &progressReader{ctx: ctx, inner: r, total: total, uploadID: uploadID, svc: s}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.inner.Read(b)
	p.read += int64(n)

	pct := int(p.read * 100 / p.total)
	if pct > 99 {
		pct = 99
	}
	// Only write on whole-percent changes to keep redis traffic low
	if pct > p.lastPct {
		p.lastPct = pct
		p.svc.setUploadProgress(p.ctx, p.uploadID, pct)
	}
	return n, err
}
