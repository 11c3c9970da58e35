package client_test

import (
    "context"
    "encoding/json"
    "fmt"
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/zaqqye/classroom_backend/internal/client"
    "github.com/zaqqye/classroom_backend/internal/models"
)

func msg(id, content string) models.Message {
    return models.Message{ID: id, Content: content, CreatedAt: time.Now()}
}

func TestApplyIsIdempotentAndOrderPreserving(t *testing.T) {
    live := client.NewLiveMessages(nil)

    live.Apply(msg("1", "first"))
    live.Apply(msg("2", "second"))
    live.Apply(msg("1", "first again"))

    got := live.Messages()
    require.Len(t, got, 2)
    assert.Equal(t, "first", got[0].Content)
    assert.Equal(t, "second", got[1].Content)
}

func TestLoadBuffersPushesThatRaceTheFetch(t *testing.T) {
    release := make(chan struct{})
    fetchStarted := make(chan struct{})

    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if r.URL.Path != "/api/v1/messages" {
            http.NotFound(w, r)
            return
        }
        close(fetchStarted)
        <-release
        // The fetched window already contains message 1.
        json.NewEncoder(w).Encode(map[string]interface{}{
            "messages": []models.Message{msg("1", "loaded")},
        })
    }))
    defer srv.Close()

    c := client.New(srv.URL, client.NewMemoryTokenStore())
    live := client.NewLiveMessages(c)

    done := make(chan error, 1)
    go func() { done <- live.Load(context.Background()) }()

    <-fetchStarted
    // Pushes arriving mid-load: one duplicate of the fetched window, one new.
    live.Apply(msg("1", "pushed duplicate"))
    live.Apply(msg("2", "pushed new"))
    close(release)

    require.NoError(t, <-done)

    got := live.Messages()
    require.Len(t, got, 2)
    assert.Equal(t, "loaded", got[0].Content, "fetched copy wins over the buffered duplicate")
    assert.Equal(t, "pushed new", got[1].Content, "buffered push replayed after the load")
}

func TestEndToEndChat(t *testing.T) {
    e := newServer(t)
    c := registerClient(t, e)
    ctx := context.Background()

    for i := 0; i < 3; i++ {
        require.NoError(t, c.SendMessage(ctx, fmt.Sprintf("m%d", i), "", false))
    }

    live := client.NewLiveMessages(c)
    snapshots := make(chan []models.Message, 16)
    statuses := make(chan client.Status, 16)
    live.OnChange = func(s []models.Message) { snapshots <- s }
    live.OnStatus = func(st client.Status) { statuses <- st }

    require.NoError(t, live.Load(ctx))
    require.Len(t, live.Messages(), 3)

    live.Subscribe(ctx)
    defer live.Unsubscribe()
    waitStatus(t, statuses, client.StatusLive)

    me, err := c.Me(ctx)
    require.NoError(t, err)
    require.NoError(t, c.SendMessage(ctx, "Hello", "", false))

    final := waitForLen(t, snapshots, 4)
    for i := 0; i < 3; i++ {
        assert.Equal(t, fmt.Sprintf("m%d", i), final[i].Content, "prior messages keep their order")
    }
    hello := final[3]
    assert.Equal(t, "Hello", hello.Content)
    assert.Equal(t, me.ID, hello.UserID)
    assert.Equal(t, me.Name, hello.AuthorName)
    assert.Equal(t, "student", hello.AuthorRole)

    // Unsubscribe twice: must be safe.
    live.Unsubscribe()
    live.Unsubscribe()
}

func TestLiveAnnouncementsReloadOnCoarseEvent(t *testing.T) {
    e := newServer(t)
    ctx := context.Background()

    admin := client.New(e.srv.URL, client.NewMemoryTokenStore())
    _, err := admin.Register(ctx, "prof@example.com", "password123", "Prof", "ADMIN-TEST-CODE")
    require.NoError(t, err)

    watcher := registerClient(t, e)
    live := client.NewLiveAnnouncements(watcher)
    snapshots := make(chan []models.Announcement, 16)
    statuses := make(chan client.Status, 16)
    live.OnChange = func(s []models.Announcement) { snapshots <- s }
    live.OnStatus = func(st client.Status) { statuses <- st }

    require.NoError(t, live.Load(ctx))
    require.Empty(t, live.Announcements())

    live.Subscribe(ctx)
    defer live.Unsubscribe()
    waitStatus(t, statuses, client.StatusLive)

    require.NoError(t, admin.PostAnnouncement(ctx, "Interro", "Vendredi", "URGENT"))

    deadline := time.After(5 * time.Second)
    for {
        select {
        case snap := <-snapshots:
            if len(snap) == 1 {
                assert.Equal(t, "Interro", snap[0].Title)
                assert.Equal(t, "URGENT", snap[0].Priority)
                return
            }
        case <-deadline:
            t.Fatal("timed out waiting for announcement reload")
        }
    }
}

func TestResubscribeReleasesPriorConnection(t *testing.T) {
    e := newServer(t)
    c := registerClient(t, e)
    ctx := context.Background()

    live := client.NewLiveMessages(c)
    snapshots := make(chan []models.Message, 16)
    statuses := make(chan client.Status, 16)
    live.OnChange = func(s []models.Message) { snapshots <- s }
    live.OnStatus = func(st client.Status) { statuses <- st }

    live.Subscribe(ctx)
    defer live.Unsubscribe()
    waitStatus(t, statuses, client.StatusLive)

    // The second subscribe must tear down the first: its read goroutine
    // reports Offline as the old connection dies, and the replacement
    // comes up Live.
    live.Subscribe(ctx)
    sawOffline, sawLive := false, false
    deadline := time.After(5 * time.Second)
    for !sawOffline || !sawLive {
        select {
        case st := <-statuses:
            switch st {
            case client.StatusOffline:
                sawOffline = true
            case client.StatusLive:
                sawLive = true
            }
        case <-deadline:
            t.Fatalf("timed out; old subscription released=%v, new live=%v", sawOffline, sawLive)
        }
    }

    // Pushes still arrive, through the replacement only.
    require.NoError(t, c.SendMessage(ctx, "after resubscribe", "", false))
    final := waitForLen(t, snapshots, 1)
    assert.Equal(t, "after resubscribe", final[0].Content)
}

func TestSubscribeDialFailureGoesOffline(t *testing.T) {
    c := client.New("http://127.0.0.1:1", client.NewMemoryTokenStore())
    live := client.NewLiveMessages(c)

    var seen []client.Status
    live.OnStatus = func(st client.Status) { seen = append(seen, st) }

    live.Subscribe(context.Background())
    assert.Equal(t, []client.Status{client.StatusConnecting, client.StatusOffline}, seen)
    assert.Equal(t, client.StatusOffline, live.Status())

    // Unsubscribe before/without an established connection is safe.
    live.Unsubscribe()
    live.Unsubscribe()
}

func waitStatus(t *testing.T, ch <-chan client.Status, want client.Status) {
    t.Helper()
    deadline := time.After(5 * time.Second)
    for {
        select {
        case st := <-ch:
            if st == want {
                return
            }
        case <-deadline:
            t.Fatalf("timed out waiting for status %v", want)
        }
    }
}

func waitForLen(t *testing.T, ch <-chan []models.Message, n int) []models.Message {
    t.Helper()
    deadline := time.After(5 * time.Second)
    for {
        select {
        case snap := <-ch:
            if len(snap) >= n {
                return snap
            }
        case <-deadline:
            t.Fatalf("timed out waiting for %d messages", n)
        }
    }
}
