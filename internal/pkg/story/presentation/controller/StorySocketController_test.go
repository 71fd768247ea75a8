package controller_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storyweave/internal/infrastructure/realtime"
	httpHandler "storyweave/internal/pkg/story/presentation/http"
	"storyweave/internal/pkg/story/persistence/repository/adapter"
)

type testFrame struct {
	Type         string `json:"type"`
	Text         string `json:"text"`
	Code         string `json:"code"`
	Error        string `json:"error"`
	Contributor  string `json:"contributor"`
	Contribution string `json:"contribution"`
	Story        string `json:"story"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := adapter.NewMemStoryRepository()
	rt := realtime.NewRouter()
	r := gin.New()
	httpHandler.RegisterRoutes(r.Group("/api/v1"), repo, rt)

	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		rt.Close()
		srv.Close()
	})
	return srv
}

type wsClient struct {
	t    *testing.T
	conn *websocket.Conn
}

func dial(t *testing.T, srv *httptest.Server) *wsClient {
	t.Helper()
	u := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/ws"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return &wsClient{t: t, conn: conn}
}

func (c *wsClient) send(msg string) {
	c.t.Helper()
	require.NoError(c.t, c.conn.WriteMessage(websocket.TextMessage, []byte(msg)))
}

func (c *wsClient) read() testFrame {
	c.t.Helper()
	require.NoError(c.t, c.conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	_, data, err := c.conn.ReadMessage()
	require.NoError(c.t, err, "expected another frame from the server")
	var f testFrame
	require.NoError(c.t, json.Unmarshal(data, &f))
	return f
}

func (c *wsClient) expect(frameType string) testFrame {
	c.t.Helper()
	f := c.read()
	require.Equal(c.t, frameType, f.Type, "unexpected frame: %+v", f)
	return f
}

// handshake consumes the welcome, submits a display name, and consumes the
// first menu prompt, leaving the client ready to send a menu choice.
func (c *wsClient) handshake(name string) {
	c.t.Helper()
	welcome := c.expect("welcome")
	assert.Contains(c.t, welcome.Text, "Enter your username")
	c.send(name)
	menu := c.expect("prompt")
	assert.Contains(c.t, menu.Text, "MAIN MENU")
}

// createStory drives the create flow to the point where the creator holds
// the turn. Returns the initial turn frame.
func (c *wsClient) createStory(title string) testFrame {
	c.t.Helper()
	c.send("2")
	c.expect("prompt")
	c.send(title)
	created := c.expect("info")
	assert.Contains(c.t, created.Text, "created")
	joined := c.expect("info")
	assert.Contains(c.t, joined.Text, "You joined: "+title)
	return c.expect("turn")
}

// joinStory drives the join flow for an existing story and consumes the
// joined confirmation; the caller consumes whatever comes next (a waiting
// notice or a turn frame).
func (c *wsClient) joinStory(title string) testFrame {
	c.t.Helper()
	c.send("3")
	c.expect("prompt")
	c.send(title)
	joined := c.expect("info")
	assert.Contains(c.t, joined.Text, "You joined: "+title)
	return joined
}

func TestSoloCreatorHoldsTurnImmediately(t *testing.T) {
	srv := newTestServer(t)

	a := dial(t, srv)
	a.handshake("alice")

	// No waiting notice for a lone participant: the turn frame comes right
	// after the join confirmation.
	turn := a.createStory("X")
	assert.Equal(t, "", turn.Story)

	a.send("exit")
	left := a.expect("info")
	assert.Contains(t, left.Text, "left")
	menu := a.expect("prompt")
	assert.Contains(t, menu.Text, "MAIN MENU")
}

func TestInvalidMenuChoiceReprompts(t *testing.T) {
	srv := newTestServer(t)

	a := dial(t, srv)
	a.handshake("alice")

	a.send("7")
	errFrame := a.expect("error")
	assert.Equal(t, "invalid_choice", errFrame.Code)
	menu := a.expect("prompt")
	assert.Contains(t, menu.Text, "MAIN MENU")
}

func TestListStories(t *testing.T) {
	srv := newTestServer(t)

	a := dial(t, srv)
	a.handshake("alice")
	a.send("1")
	empty := a.expect("info")
	assert.Contains(t, empty.Text, "No stories available yet")
	a.expect("prompt")
	a.createStory("X")

	b := dial(t, srv)
	b.handshake("bob")
	b.send("1")
	listing := b.expect("info")
	assert.Contains(t, listing.Text, "- X")
}

func TestJoinErrors(t *testing.T) {
	srv := newTestServer(t)

	a := dial(t, srv)
	a.handshake("alice")

	// Joining before any story exists skips the title prompt entirely.
	a.send("3")
	none := a.expect("info")
	assert.Contains(t, none.Text, "No stories available to join")
	a.expect("prompt")

	a.createStory("X")
	a.send("exit")
	a.expect("info")
	a.expect("prompt")

	a.send("3")
	a.expect("prompt")
	a.send("Y")
	notFound := a.expect("error")
	assert.Equal(t, "not_found", notFound.Code)
	a.expect("prompt")
}

func TestRoundRobinContributionsAndBroadcasts(t *testing.T) {
	srv := newTestServer(t)

	a := dial(t, srv)
	a.handshake("alice")
	a.createStory("X")

	b := dial(t, srv)
	b.handshake("bob")
	b.joinStory("X")
	waiting := b.expect("info")
	assert.Contains(t, waiting.Text, "1 user(s) ahead")

	// Alice contributes: Bob gets the update and then the turn; Alice only
	// gets her waiting notice (never her own update).
	a.send("Once")
	update := b.expect("update")
	assert.Equal(t, "alice", update.Contributor)
	assert.Equal(t, "Once", update.Contribution)
	assert.Equal(t, "Once ", update.Story)
	turn := b.expect("turn")
	assert.Equal(t, "Once ", turn.Story)

	aWaiting := a.expect("info")
	assert.Contains(t, aWaiting.Text, "Waiting your turn... 1 user(s) ahead")

	// Bob contributes: the turn rotates back to Alice.
	b.send("upon")
	update = a.expect("update")
	assert.Equal(t, "bob", update.Contributor)
	assert.Equal(t, "upon", update.Contribution)
	assert.Equal(t, "Once upon ", update.Story)
	turn = a.expect("turn")
	assert.Equal(t, "Once upon ", turn.Story)

	bWaiting := b.expect("info")
	assert.Contains(t, bWaiting.Text, "user(s) ahead")
}

func TestWaitNoticeNotRefreshedWhenQueueShrinks(t *testing.T) {
	srv := newTestServer(t)

	a := dial(t, srv)
	a.handshake("alice")
	a.createStory("X")

	b := dial(t, srv)
	b.handshake("bob")
	b.joinStory("X")
	bWaiting := b.expect("info")
	assert.Contains(t, bWaiting.Text, "1 user(s) ahead")

	c := dial(t, srv)
	c.handshake("carol")
	c.joinStory("X")
	cWaiting := c.expect("info")
	assert.Contains(t, cWaiting.Text, "2 user(s) ahead")

	// Bob drops out of the queue; Carol's position improves but she must
	// NOT receive a fresh waiting notice for it.
	require.NoError(t, b.conn.Close())
	time.Sleep(100 * time.Millisecond)

	a.send("Once")
	update := c.expect("update")
	assert.Equal(t, "alice", update.Contributor)
	turn := c.expect("turn")
	assert.Equal(t, "Once ", turn.Story)
}

func TestMenuExitDeliversGoodbye(t *testing.T) {
	srv := newTestServer(t)

	a := dial(t, srv)
	a.handshake("alice")

	a.send("4")
	goodbye := a.expect("goodbye")
	assert.Contains(t, goodbye.Text, "Goodbye")

	// After the farewell the server closes the socket cleanly.
	require.NoError(t, a.conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	_, _, err := a.conn.ReadMessage()
	var closeErr *websocket.CloseError
	require.ErrorAs(t, err, &closeErr)
	assert.Equal(t, websocket.CloseNormalClosure, closeErr.Code)
}

func TestHeadExitPromotesWaiterWithoutDelay(t *testing.T) {
	srv := newTestServer(t)

	a := dial(t, srv)
	a.handshake("alice")
	a.createStory("X")

	b := dial(t, srv)
	b.handshake("bob")
	b.joinStory("X")
	b.expect("info") // waiting notice

	a.send("exit")
	a.expect("info")
	menu := a.expect("prompt")
	assert.Contains(t, menu.Text, "MAIN MENU")

	// Bob is prompted by Alice's leave itself, not by any polling cycle.
	turn := b.expect("turn")
	assert.Equal(t, "", turn.Story)
}

func TestHeadDisconnectPromotesWaiter(t *testing.T) {
	srv := newTestServer(t)

	a := dial(t, srv)
	a.handshake("alice")
	a.createStory("X")

	b := dial(t, srv)
	b.handshake("bob")
	b.joinStory("X")
	b.expect("info") // waiting notice

	// Abrupt close while holding the turn is treated like "exit".
	require.NoError(t, a.conn.Close())

	turn := b.expect("turn")
	assert.Equal(t, "", turn.Story)
}

func TestConcurrentCreateSingleWinner(t *testing.T) {
	srv := newTestServer(t)

	a := dial(t, srv)
	a.handshake("alice")
	b := dial(t, srv)
	b.handshake("bob")

	for _, c := range []*wsClient{a, b} {
		c.send("2")
		c.expect("prompt")
	}
	a.send("Dragons")
	b.send("Dragons")

	winners := 0
	for _, c := range []*wsClient{a, b} {
		f := c.read()
		switch f.Type {
		case "info":
			winners++
			assert.Contains(t, f.Text, "created")
			c.expect("info") // joined
			c.expect("turn")
		case "error":
			assert.Equal(t, "already_exists", f.Code)
			c.expect("prompt") // back to the menu
		default:
			t.Fatalf("unexpected frame: %+v", f)
		}
	}
	assert.Equal(t, 1, winners, "exactly one concurrent creator may win")
}

func TestRestSurfaceReflectsStoryState(t *testing.T) {
	srv := newTestServer(t)

	a := dial(t, srv)
	a.handshake("alice")
	a.createStory("X")
	a.send("Once")
	// Lone writer: the rotation re-prompts Alice immediately.
	a.expect("turn")

	resp, err := http.Get(srv.URL + "/api/v1/stories")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"stories":["X"]}`, string(body))

	resp, err = http.Get(srv.URL + "/api/v1/story/X")
	require.NoError(t, err)
	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var detail struct {
		Title        string   `json:"title"`
		Text         string   `json:"text"`
		Participants []string `json:"participants"`
	}
	require.NoError(t, json.Unmarshal(body, &detail))
	assert.Equal(t, "X", detail.Title)
	assert.Equal(t, "Once ", detail.Text)
	assert.Equal(t, []string{"alice"}, detail.Participants)

	resp, err = http.Get(srv.URL + "/api/v1/story/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
