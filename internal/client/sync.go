package client

import (
    "context"
    "net/http"
    "strings"
    "sync"

    "github.com/gorilla/websocket"

    "github.com/zaqqye/classroom_backend/internal/models"
    "github.com/zaqqye/classroom_backend/internal/ws"
)

// Status is the connection state of a subscription. While Offline the
// mirror may be stale and the UI should say so; there is no automatic
// reconnect.
type Status int

const (
    StatusConnecting Status = iota
    StatusLive
    StatusOffline
)

// Handlers receives dispatched subscription events. All callbacks are
// invoked from the subscription's read goroutine.
type Handlers struct {
    OnMessage             func(models.Message)
    OnAnnouncementsChange func()
    OnScheduleChange      func()
    OnStatus              func(Status)
}

// Subscription is one live websocket registration. Unsubscribe is
// idempotent and safe even when the dial never succeeded.
type Subscription struct {
    conn *websocket.Conn
    once sync.Once
    done chan struct{}
}

func (s *Subscription) Unsubscribe() {
    if s == nil {
        return
    }
    s.once.Do(func() {
        close(s.done)
        if s.conn != nil {
            s.conn.Close()
        }
    })
}

// Subscribe dials the event stream and dispatches frames to the handlers.
// On dial failure the subscription is returned Offline rather than as an
// error, since a stale-but-usable view beats no view.
func (c *Client) Subscribe(ctx context.Context, h Handlers) *Subscription {
    sub := &Subscription{done: make(chan struct{})}

    status := func(st Status) {
        if h.OnStatus != nil {
            h.OnStatus(st)
        }
    }
    status(StatusConnecting)

    header := http.Header{}
    if c.token != "" {
        header.Set("Authorization", "Bearer "+c.token)
    }
    conn, resp, err := websocket.DefaultDialer.DialContext(ctx, c.wsURL(), header)
    if err != nil {
        if resp != nil && resp.Body != nil {
            resp.Body.Close()
        }
        status(StatusOffline)
        return sub
    }
    sub.conn = conn
    status(StatusLive)

    go func() {
        defer func() {
            conn.Close()
            status(StatusOffline)
        }()
        for {
            var event ws.Event
            if err := conn.ReadJSON(&event); err != nil {
                return
            }
            select {
            case <-sub.done:
                return
            default:
            }
            switch event.Type {
            case ws.EventMessageCreated:
                if h.OnMessage != nil && event.Message != nil {
                    h.OnMessage(*event.Message)
                }
            case ws.EventAnnouncementsChange:
                if h.OnAnnouncementsChange != nil {
                    h.OnAnnouncementsChange()
                }
            case ws.EventScheduleChange:
                if h.OnScheduleChange != nil {
                    h.OnScheduleChange()
                }
            }
        }
    }()
    return sub
}

func (c *Client) wsURL() string {
    base := c.BaseURL
    switch {
    case strings.HasPrefix(base, "https://"):
        base = "wss://" + strings.TrimPrefix(base, "https://")
    case strings.HasPrefix(base, "http://"):
        base = "ws://" + strings.TrimPrefix(base, "http://")
    }
    return base + "/api/v1/ws"
}

// LiveMessages mirrors the chat window: a bulk load plus fine-grained
// appends from the subscription. Appends are idempotent by message id and
// never reorder already-held entries. Events that race a load are buffered
// and replayed once the load lands, so a load can never bury a newer push.
type LiveMessages struct {
    client *Client

    mu      sync.Mutex
    items   []models.Message
    ids     map[string]struct{}
    loading bool
    pending []models.Message
    status  Status

    sub *Subscription
    gen int

    // OnChange fires after every applied mutation with a fresh snapshot.
    OnChange func([]models.Message)
    // OnStatus mirrors the subscription state for the UI.
    OnStatus func(Status)
}

func NewLiveMessages(c *Client) *LiveMessages {
    return &LiveMessages{
        client: c,
        ids:    make(map[string]struct{}),
        status: StatusConnecting,
    }
}

// Load fetches the current window and replaces the mirror atomically.
func (l *LiveMessages) Load(ctx context.Context) error {
    l.mu.Lock()
    l.loading = true
    l.pending = nil
    l.mu.Unlock()

    items, err := l.client.ListMessages(ctx)

    l.mu.Lock()
    l.loading = false
    if err != nil {
        pending := l.pending
        l.pending = nil
        // Keep whatever we had; replay anything that arrived meanwhile.
        for _, msg := range pending {
            l.appendLocked(msg)
        }
        l.mu.Unlock()
        return err
    }

    l.items = items
    l.ids = make(map[string]struct{}, len(items))
    for _, msg := range items {
        l.ids[msg.ID] = struct{}{}
    }
    // Replay pushes that raced the fetch; idempotent append dedupes any
    // that the fetch already included.
    pending := l.pending
    l.pending = nil
    for _, msg := range pending {
        l.appendLocked(msg)
    }
    snapshot := l.snapshotLocked()
    l.mu.Unlock()

    l.notify(snapshot)
    return nil
}

// Subscribe attaches the mirror to the event stream. Resubscribing
// releases the previous subscription first, so its read goroutine never
// outlives the replacement.
func (l *LiveMessages) Subscribe(ctx context.Context) {
    l.mu.Lock()
    prev := l.sub
    l.gen++
    gen := l.gen
    l.mu.Unlock()
    prev.Unsubscribe()

    sub := l.client.Subscribe(ctx, Handlers{
        OnMessage: l.Apply,
        OnStatus: func(st Status) {
            l.mu.Lock()
            // A superseded subscription's teardown must not clobber the
            // replacement's status.
            if l.gen == gen {
                l.status = st
            }
            l.mu.Unlock()
            if l.OnStatus != nil {
                l.OnStatus(st)
            }
        },
    })
    l.mu.Lock()
    l.sub = sub
    l.mu.Unlock()
}

// Unsubscribe releases the subscription; safe to call repeatedly.
func (l *LiveMessages) Unsubscribe() {
    l.mu.Lock()
    sub := l.sub
    l.mu.Unlock()
    sub.Unsubscribe()
}

// Apply merges one pushed message into the mirror.
func (l *LiveMessages) Apply(msg models.Message) {
    l.mu.Lock()
    if l.loading {
        l.pending = append(l.pending, msg)
        l.mu.Unlock()
        return
    }
    changed := l.appendLocked(msg)
    snapshot := l.snapshotLocked()
    l.mu.Unlock()

    if changed {
        l.notify(snapshot)
    }
}

// Messages returns a copy of the current mirror.
func (l *LiveMessages) Messages() []models.Message {
    l.mu.Lock()
    defer l.mu.Unlock()
    return l.snapshotLocked()
}

func (l *LiveMessages) Status() Status {
    l.mu.Lock()
    defer l.mu.Unlock()
    return l.status
}

func (l *LiveMessages) appendLocked(msg models.Message) bool {
    if _, ok := l.ids[msg.ID]; ok {
        return false
    }
    l.ids[msg.ID] = struct{}{}
    l.items = append(l.items, msg)
    return true
}

func (l *LiveMessages) snapshotLocked() []models.Message {
    out := make([]models.Message, len(l.items))
    copy(out, l.items)
    return out
}

func (l *LiveMessages) notify(snapshot []models.Message) {
    if l.OnChange != nil {
        l.OnChange(snapshot)
    }
}

// LiveAnnouncements mirrors the announcement board with the coarse
// strategy: any change notification triggers a full reload.
type LiveAnnouncements struct {
    client *Client

    mu     sync.Mutex
    items  []models.Announcement
    status Status

    sub *Subscription
    gen int

    OnChange func([]models.Announcement)
    OnStatus func(Status)
}

func NewLiveAnnouncements(c *Client) *LiveAnnouncements {
    return &LiveAnnouncements{client: c, status: StatusConnecting}
}

func (l *LiveAnnouncements) Load(ctx context.Context) error {
    items, err := l.client.ListAnnouncements(ctx)
    if err != nil {
        return err
    }
    l.mu.Lock()
    l.items = items
    snapshot := make([]models.Announcement, len(items))
    copy(snapshot, items)
    l.mu.Unlock()

    if l.OnChange != nil {
        l.OnChange(snapshot)
    }
    return nil
}

// Subscribe attaches the board to the event stream, releasing any
// previous subscription first.
func (l *LiveAnnouncements) Subscribe(ctx context.Context) {
    l.mu.Lock()
    prev := l.sub
    l.gen++
    gen := l.gen
    l.mu.Unlock()
    prev.Unsubscribe()

    sub := l.client.Subscribe(ctx, Handlers{
        OnAnnouncementsChange: func() {
            // Reload failure leaves the previous snapshot in place.
            _ = l.Load(ctx)
        },
        OnStatus: func(st Status) {
            l.mu.Lock()
            if l.gen == gen {
                l.status = st
            }
            l.mu.Unlock()
            if l.OnStatus != nil {
                l.OnStatus(st)
            }
        },
    })
    l.mu.Lock()
    l.sub = sub
    l.mu.Unlock()
}

func (l *LiveAnnouncements) Unsubscribe() {
    l.mu.Lock()
    sub := l.sub
    l.mu.Unlock()
    sub.Unsubscribe()
}

func (l *LiveAnnouncements) Announcements() []models.Announcement {
    l.mu.Lock()
    defer l.mu.Unlock()
    out := make([]models.Announcement, len(l.items))
    copy(out, l.items)
    return out
}

func (l *LiveAnnouncements) Status() Status {
    l.mu.Lock()
    defer l.mu.Unlock()
    return l.status
}
