package stats

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"mobisync/internal/upstream"
)

const (
	globalPath      = "/api/v1/stats/global"
	leaderboardPath = "/api/v1/leaderboard"
)

type Source interface {
	Global(ctx context.Context) (Global, error)
	Leaderboard(ctx context.Context, limit int) ([]Entry, error)
}

type Upstream struct {
	client upstream.Getter
}

func NewUpstream(client upstream.Getter) *Upstream {
	return &Upstream{client: client}
}

func (u *Upstream) Global(ctx context.Context) (Global, error) {
	var g Global
	if err := u.client.Get(ctx, globalPath, nil, &g); err != nil {
		return Global{}, err
	}
	return g, nil
}

// Leaderboard принимает {entries: [...]} или голый массив
func (u *Upstream) Leaderboard(ctx context.Context, limit int) ([]Entry, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))

	raw, err := u.client.GetRaw(ctx, leaderboardPath, q)
	if err != nil {
		return nil, err
	}
	l, err := upstream.DecodeListing[Entry](raw, "entries", "data")
	if err != nil {
		return nil, err
	}
	if l.Shape == upstream.ShapeUnknown {
		return nil, fmt.Errorf("%w: leaderboard: no entries array", upstream.ErrUpstreamMalformed)
	}
	return l.Records, nil
}
