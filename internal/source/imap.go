package source

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/emersion/go-imap"
	imapclient "github.com/emersion/go-imap/client"
	"github.com/jhillyerd/enmime"

	"invdash/internal/config"
)

// IMAPSource takes the workbook from the newest message in a mailbox that
// carries an attachment with the configured file name. The mailbox is opened
// read-only.
type IMAPSource struct {
	host     string
	port     int
	secure   bool
	user     string
	password string
	mailbox  string
	fileName string
	scanMax  int
	timeout  time.Duration
}

func NewIMAPSource(cfg config.Config) (*IMAPSource, error) {
	if err := cfg.Require("IMAP_HOST", cfg.IMAPHost); err != nil {
		return nil, err
	}
	if err := cfg.Require("IMAP_USER", cfg.IMAPUser); err != nil {
		return nil, err
	}
	if err := cfg.Require("IMAP_PASSWORD", cfg.IMAPPassword); err != nil {
		return nil, err
	}

	scanMax := cfg.IMAPScanMax
	if scanMax <= 0 {
		scanMax = 20
	}
	return &IMAPSource{
		host:     cfg.IMAPHost,
		port:     cfg.IMAPPort,
		secure:   cfg.IMAPSecure,
		user:     cfg.IMAPUser,
		password: cfg.IMAPPassword,
		mailbox:  cfg.IMAPMailbox,
		fileName: cfg.SourceFileName,
		scanMax:  scanMax,
		timeout:  time.Duration(cfg.SourceTimeoutMs) * time.Millisecond,
	}, nil
}

func (s *IMAPSource) Name() string {
	return fmt.Sprintf("imap://%s@%s:%d/%s", s.user, s.host, s.port, s.mailbox)
}

func (s *IMAPSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, unavailable(s.Name(), err)
	}
	raws, err := s.fetchRecent()
	if err != nil {
		return nil, unavailable(s.Name(), err)
	}
	if err := ctx.Err(); err != nil {
		return nil, unavailable(s.Name(), err)
	}

	for _, raw := range raws {
		content, ok, err := FindAttachment(raw, s.fileName)
		if err != nil {
			continue
		}
		if ok {
			return content, nil
		}
	}
	return nil, unavailable(s.Name(), fmt.Errorf("no message with attachment %q in last %d messages", s.fileName, s.scanMax))
}

// fetchRecent returns raw messages, newest first.
func (s *IMAPSource) fetchRecent() ([][]byte, error) {
	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	var client *imapclient.Client
	var err error
	if s.secure {
		client, err = imapclient.DialTLS(addr, &tls.Config{ServerName: s.host})
	} else {
		client, err = imapclient.Dial(addr)
	}
	if err != nil {
		return nil, err
	}
	defer client.Logout()
	if s.timeout > 0 {
		client.Timeout = s.timeout
	}

	if err := client.Login(s.user, s.password); err != nil {
		return nil, err
	}

	mbox, err := client.Select(s.mailbox, true)
	if err != nil {
		return nil, err
	}
	if mbox.Messages == 0 {
		return nil, errors.New("mailbox is empty")
	}

	from := uint32(1)
	if mbox.Messages > uint32(s.scanMax) {
		from = mbox.Messages - uint32(s.scanMax) + 1
	}
	seqset := new(imap.SeqSet)
	seqset.AddRange(from, mbox.Messages)

	section := &imap.BodySectionName{}
	items := []imap.FetchItem{imap.FetchInternalDate, section.FetchItem()}
	messages := make(chan *imap.Message, s.scanMax)
	fetchDone := make(chan error, 1)
	go func() { fetchDone <- client.Fetch(seqset, items, messages) }()

	type fetched struct {
		seq uint32
		raw []byte
	}
	out := make([]fetched, 0, s.scanMax)
	for msg := range messages {
		if msg == nil {
			continue
		}
		body := msg.GetBody(section)
		if body == nil {
			continue
		}
		raw, err := io.ReadAll(body)
		if err != nil {
			return nil, err
		}
		out = append(out, fetched{seq: msg.SeqNum, raw: raw})
	}
	if err := <-fetchDone; err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool { return out[i].seq > out[j].seq })
	raws := make([][]byte, 0, len(out))
	for _, f := range out {
		raws = append(raws, f.raw)
	}
	return raws, nil
}

// FindAttachment returns the content of the first attachment in a raw MIME
// message whose file name matches fileName, ignoring case.
func FindAttachment(raw []byte, fileName string) ([]byte, bool, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return nil, false, err
	}
	want := strings.TrimSpace(fileName)
	for _, att := range env.Attachments {
		if strings.EqualFold(strings.TrimSpace(att.FileName), want) {
			return att.Content, true, nil
		}
	}
	return nil, false, nil
}
