package tokenstore

import (
	"context"
	"net"
	"testing"

	"github.com/redis/go-redis/v9"
)

// scriptedHook answers commands from a fixed key/value map without a real
// server and records every command name it sees.
type scriptedHook struct {
	values map[string]string
	names  []string
}

func (h *scriptedHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return nil, nil
	}
}

func (h *scriptedHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		h.names = append(h.names, cmd.Name())
		if slice, ok := cmd.(*redis.SliceCmd); ok {
			args := slice.Args()
			reply := make([]interface{}, 0, len(args)-1)
			for _, a := range args[1:] {
				if v, found := h.values[a.(string)]; found {
					reply = append(reply, v)
				} else {
					reply = append(reply, nil)
				}
			}
			slice.SetVal(reply)
		}
		return nil
	}
}

func (h *scriptedHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		for _, cmd := range cmds {
			h.names = append(h.names, cmd.Name())
		}
		return nil
	}
}

func newScriptedRedis(hook *scriptedHook) *Redis {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	client.AddHook(hook)
	return &Redis{client: client, scope: "test"}
}

func TestRedisLoadIsOneRoundTrip(t *testing.T) {
	hook := &scriptedHook{values: map[string]string{
		"session:test:token":   "abc",
		"session:test:refresh": "def",
	}}
	r := newScriptedRedis(hook)
	defer r.Close()

	creds, err := r.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if creds.Token != "abc" || creds.RefreshToken != "def" {
		t.Errorf("Load returned %+v, want token abc / refresh def", creds)
	}
	// Both keys must come back from a single command, so nothing can be
	// written between the token read and the refresh read.
	if len(hook.names) != 1 || hook.names[0] != "mget" {
		t.Errorf("Load issued commands %v, want a single mget", hook.names)
	}
}

func TestRedisLoadMissingKeysIsAnonymous(t *testing.T) {
	hook := &scriptedHook{values: map[string]string{}}
	r := newScriptedRedis(hook)
	defer r.Close()

	creds, err := r.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if creds.Token != "" || creds.RefreshToken != "" {
		t.Errorf("Load returned %+v for missing keys, want empty credentials", creds)
	}
}
