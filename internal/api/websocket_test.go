package api

import (
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablegames/blackjack-table-be/internal/game"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(log.New(io.Discard))
	go hub.Run()
	return hub
}

// watch registers a hub client for a table without a network connection.
// Registering a second client afterwards guarantees the first is in the
// table map, since the hub loop handles one event at a time.
func watch(hub *Hub, tableID string) *Client {
	client := &Client{send: make(chan []byte, 8), tableID: tableID, hub: hub}
	hub.register <- client
	sync := &Client{send: make(chan []byte, 1), hub: hub}
	hub.register <- sync
	return client
}

func receive(t *testing.T, client *Client) Message {
	t.Helper()
	select {
	case data := <-client.send:
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message delivered")
		return Message{}
	}
}

func TestBroadcastToTableReachesOnlyItsWatchers(t *testing.T) {
	hub := newTestHub(t)
	watcher := watch(hub, "t1")
	other := watch(hub, "t2")

	hub.BroadcastToTable("t1", Message{Type: "ping", TableID: "t1"})

	msg := receive(t, watcher)
	assert.Equal(t, "ping", msg.Type)
	assert.Equal(t, "t1", msg.TableID)

	select {
	case data := <-other.send:
		t.Fatalf("unexpected message for another table: %s", data)
	default:
	}
}

func TestBroadcastTableUpdateCarriesSnapshot(t *testing.T) {
	hub := newTestHub(t)
	tbl := game.NewTable("main", game.ClassicRules(), 1000)
	watcher := watch(hub, tbl.ID)

	hub.BroadcastTableUpdate(tbl, nil)

	msg := receive(t, watcher)
	assert.Equal(t, "tableUpdate", msg.Type)
	assert.Equal(t, tbl.ID, msg.TableID)
	data := msg.Data.(map[string]interface{})
	table := data["table"].(map[string]interface{})
	assert.Equal(t, tbl.ID, table["id"])
	assert.NotContains(t, data, "result")
}

func TestUnregisteredClientStopsReceiving(t *testing.T) {
	hub := newTestHub(t)
	watcher := watch(hub, "t1")

	hub.unregister <- watcher
	watch(hub, "t1") // synchronizes: unregister has been processed

	_, open := <-watcher.send
	assert.False(t, open, "send channel closed on unregister")
}
