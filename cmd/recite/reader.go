package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"recite/internal/pagination"
	"recite/internal/playback"
	"recite/internal/services"
	"recite/internal/services/quran"
	"recite/internal/session"
	"recite/internal/textutil"
)

const readerHelp = `Commands:
  n            show the next verses
  p <verse>    play or pause a verse (number or key such as 2:255)
  s [verse]    show list status, or the playback state of a verse
  r            retry after a failed fetch
  q            quit`

// reader is the line-driven list view over a session.
type reader struct {
	sess     *session.Session
	out      io.Writer
	updates  <-chan pagination.Snapshot[quran.Verse]
	window   int
	first    int
	colorize bool
}

func newReader(sess *session.Session, out io.Writer, window int, colorize bool) *reader {
	if window <= 0 {
		window = pagination.DefaultPageSize
	}
	updates, _ := sess.Subscribe()
	return &reader{sess: sess, out: out, updates: updates, window: window, colorize: colorize}
}

func (r *reader) run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
		close(lines)
	}()

	snap, err := r.settle(ctx)
	if err != nil {
		return err
	}
	r.show(snap)

	for {
		fmt.Fprint(r.out, "> ")
		select {
		case <-ctx.Done():
			fmt.Fprintln(r.out)
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(r.out)
				return <-scanErr
			}
			quit, err := r.handle(ctx, line)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		}
	}
}

func (r *reader) handle(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}
	switch strings.ToLower(fields[0]) {
	case "n", "next":
		return false, r.next(ctx)
	case "p", "play":
		r.toggle(ctx, arg)
	case "s", "status":
		r.status(arg)
	case "r", "retry":
		return false, r.retry(ctx)
	case "q", "quit", "exit":
		return true, nil
	case "h", "help", "?":
		fmt.Fprintln(r.out, readerHelp)
	default:
		fmt.Fprintf(r.out, "unknown command %q (h for help)\n", fields[0])
	}
	return false, nil
}

// settle waits until no fetch is in flight and returns the resulting state.
func (r *reader) settle(ctx context.Context) (pagination.Snapshot[quran.Verse], error) {
	for {
		snap := r.sess.Snapshot()
		if !snap.Status.Fetching() {
			return snap, nil
		}
		select {
		case <-ctx.Done():
			return snap, ctx.Err()
		case _, ok := <-r.updates:
			if !ok {
				return r.sess.Snapshot(), nil
			}
		}
	}
}

func (r *reader) show(snap pagination.Snapshot[quran.Verse]) {
	total := len(snap.Items)
	last := min(r.first+r.window, total) - 1
	for i := r.first; i <= last; i++ {
		v := snap.Items[i]
		marker := " "
		if r.sess.PlaybackStatus(v.Key()) == playback.Playing {
			marker = "*"
		}
		fmt.Fprintf(r.out, "%s %8s  %s\n", marker, v.VerseKey, textutil.StripTags(v.Text()))
		if words := v.WordTranslation(); words != "" {
			fmt.Fprintf(r.out, "  %8s  %s\n", "", words)
		}
	}
	switch {
	case snap.Status == pagination.Failed:
		r.failure(snap)
	case total > 0 && last >= total-1 && !snap.HasNext:
		fmt.Fprintln(r.out, renderStatusLine("List", statusOK, "end of chapter", r.colorize))
	}
	if last >= r.first {
		r.sess.Visible(r.first, last)
	}
}

func (r *reader) failure(snap pagination.Snapshot[quran.Verse]) {
	label := "Page"
	if services.Scope(snap.Err, len(snap.Items) == 0) == services.ScopeSession {
		label = "List"
	}
	msg := "could not load verses"
	if snap.Err != nil {
		msg = snap.Err.Error()
	}
	if snap.Err == nil || services.Retryable(snap.Err) {
		msg += "; type r to retry"
	}
	fmt.Fprintln(r.out, renderStatusLine(label, statusError, msg, r.colorize))
}

func (r *reader) next(ctx context.Context) error {
	snap, err := r.settle(ctx)
	if err != nil {
		return err
	}
	if r.first+r.window >= len(snap.Items) {
		if snap.Status == pagination.Failed {
			r.failure(snap)
			return nil
		}
		if !snap.HasNext {
			fmt.Fprintln(r.out, renderStatusLine("List", statusOK, "end of chapter", r.colorize))
			return nil
		}
		r.sess.RequestMore()
		if snap, err = r.settle(ctx); err != nil {
			return err
		}
		if r.first+r.window >= len(snap.Items) {
			if snap.Status == pagination.Failed {
				r.failure(snap)
			} else {
				fmt.Fprintln(r.out, renderStatusLine("List", statusOK, "end of chapter", r.colorize))
			}
			return nil
		}
	}
	r.first += r.window
	r.show(snap)
	return nil
}

func (r *reader) retry(ctx context.Context) error {
	if r.sess.Status() != pagination.Failed {
		fmt.Fprintln(r.out, renderStatusLine("List", statusInfo, "nothing to retry", r.colorize))
		return nil
	}
	r.sess.RequestMore()
	snap, err := r.settle(ctx)
	if err != nil {
		return err
	}
	r.show(snap)
	return nil
}

func (r *reader) toggle(ctx context.Context, arg string) {
	v, ok := r.lookup(arg)
	if !ok {
		return
	}
	if err := r.sess.TogglePlayback(ctx, v.Key()); err != nil {
		fmt.Fprintln(r.out, renderStatusLine(v.VerseKey, statusError, err.Error(), r.colorize))
		return
	}
	state := r.sess.PlaybackStatus(v.Key())
	fmt.Fprintln(r.out, renderStatusLine(v.VerseKey, playbackKind(state), state.String(), r.colorize))
}

func (r *reader) status(arg string) {
	if arg == "" {
		snap := r.sess.Snapshot()
		msg := fmt.Sprintf("%s, %d verses in %d pages", snap.Status, len(snap.Items), snap.Pages)
		if snap.HasNext {
			msg += ", more available"
		}
		fmt.Fprintln(r.out, renderStatusLine("List", listKind(snap.Status), msg, r.colorize))
		return
	}
	v, ok := r.lookup(arg)
	if !ok {
		return
	}
	state := r.sess.PlaybackStatus(v.Key())
	msg := state.String()
	if err := r.sess.PlaybackErr(v.Key()); err != nil {
		msg += ": " + err.Error()
	}
	fmt.Fprintln(r.out, renderStatusLine(v.VerseKey, playbackKind(state), msg, r.colorize))
}

// lookup finds a loaded verse by number or key and reports misses.
func (r *reader) lookup(arg string) (quran.Verse, bool) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		fmt.Fprintln(r.out, "a verse number is required")
		return quran.Verse{}, false
	}
	number, numErr := strconv.Atoi(arg)
	for _, v := range r.sess.Items() {
		if v.VerseKey == arg || (numErr == nil && v.VerseNumber == number) {
			return v, true
		}
	}
	fmt.Fprintf(r.out, "verse %s is not loaded\n", arg)
	return quran.Verse{}, false
}
