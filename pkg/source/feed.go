package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.nanomsg.org/mangos/v3"
	"go.nanomsg.org/mangos/v3/protocol/sub"

	// Register all transports
	_ "go.nanomsg.org/mangos/v3/transport/all"

	"github.com/dd0wney/graphlens/pkg/graph"
	"github.com/dd0wney/graphlens/pkg/logging"
)

// watchPollInterval bounds how long Watch blocks in Recv before
// rechecking its context.
const watchPollInterval = 250 * time.Millisecond

// FeedSource subscribes to a pub/sub feed whose messages are snapshot
// documents in the JSON wire format. Each message fully replaces the
// displayed graph.
type FeedSource struct {
	sock mangos.Socket
	url  string
	log  logging.Logger
}

// NewFeedSource dials the feed at url (any mangos transport address,
// e.g. tcp://host:port or inproc://name) and subscribes to everything.
func NewFeedSource(url string, log logging.Logger) (*FeedSource, error) {
	if log == nil {
		log = logging.NewNopLogger()
	}
	sock, err := sub.NewSocket()
	if err != nil {
		return nil, fmt.Errorf("create sub socket: %w", err)
	}
	if err := sock.SetOption(mangos.OptionSubscribe, []byte("")); err != nil {
		sock.Close()
		return nil, fmt.Errorf("subscribe: %w", err)
	}
	if err := sock.Dial(url); err != nil {
		sock.Close()
		return nil, fmt.Errorf("dial feed %s: %w", url, err)
	}
	return &FeedSource{sock: sock, url: url, log: log}, nil
}

// Load blocks until the next published snapshot arrives or the context
// deadline passes.
func (s *FeedSource) Load(ctx context.Context) (*graph.Snapshot, error) {
	recvDeadline := watchPollInterval
	if deadline, ok := ctx.Deadline(); ok {
		recvDeadline = time.Until(deadline)
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.sock.SetOption(mangos.OptionRecvDeadline, recvDeadline); err != nil {
			return nil, fmt.Errorf("feed %s: %w", s.url, err)
		}
		data, err := s.sock.Recv()
		if errors.Is(err, mangos.ErrRecvTimeout) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("feed %s: %w", s.url, err)
		}
		return Decode(data)
	}
}

// Watch delivers every published snapshot to fn until the context is
// canceled. Messages that fail to decode are logged and skipped; the
// watch keeps running.
func (s *FeedSource) Watch(ctx context.Context, fn func(*graph.Snapshot)) error {
	if err := s.sock.SetOption(mangos.OptionRecvDeadline, watchPollInterval); err != nil {
		return fmt.Errorf("feed %s: %w", s.url, err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := s.sock.Recv()
		if errors.Is(err, mangos.ErrRecvTimeout) {
			continue
		}
		if errors.Is(err, mangos.ErrClosed) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("feed %s: %w", s.url, err)
		}

		snap, err := Decode(data)
		if err != nil {
			s.log.Warn("Dropping undecodable feed message",
				logging.String("feed", s.url),
				logging.String("error", err.Error()))
			continue
		}
		s.log.Debug("Feed snapshot received",
			logging.String("feed", s.url),
			logging.Int("nodes", snap.NodeCount()),
			logging.Int("edges", snap.EdgeCount()))
		fn(snap)
	}
}

// Close closes the subscription socket. A running Watch returns nil.
func (s *FeedSource) Close() error {
	return s.sock.Close()
}
