// Package bridge relays instrument commands over MQTT: one topic carries
// command lines in, a second carries response lines out.
package bridge

import (
	"strings"
	"sync"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"

	"benchbox/host"
	"benchbox/protocol"
)

// Topics derives the command and response topics from one prefix.
func Topics(prefix string) (cmd, rsp string) {
	prefix = strings.TrimSuffix(prefix, "/")
	return prefix + "/cmd", prefix + "/rsp"
}

// Exec runs one instrument command. *host.Client satisfies it.
type Exec interface {
	Exec(line string) (*host.Result, error)
}

// Bridge relays command payloads to one instrument and publishes the
// resulting transaction line by line. Commands run one at a time; the
// instrument link is a single stream.
type Bridge struct {
	Prefix  string
	Client  Exec
	Publish func(topic string, payload []byte)

	mu sync.Mutex
}

// Subscriber is the slice of the MQTT client the bridge attaches through.
// paho.Client satisfies it.
type Subscriber interface {
	Subscribe(topic string, qos byte, callback paho.MessageHandler) paho.Token
}

// Listen subscribes the command topic on c and feeds arriving payloads to
// HandleCommand. The subscribe verdict arrives asynchronously; a rejection
// is logged once the token resolves. Call from the client's on-connect
// handler so the subscription survives reconnects.
func (b *Bridge) Listen(c Subscriber) {
	cmdTopic, _ := Topics(b.Prefix)
	token := c.Subscribe(cmdTopic, 0, func(_ paho.Client, msg paho.Message) {
		b.HandleCommand(msg.Payload())
	})
	go func() {
		if token.Wait() && token.Error() != nil {
			glog.Errorf("subscribe %s: %v", cmdTopic, token.Error())
		}
	}()
}

// HandleCommand runs one command payload. Each response line publishes
// separately so subscribers see the transaction as it happens, closed by
// an END status line even when the link itself fails.
func (b *Bridge) HandleCommand(payload []byte) {
	line := strings.TrimSpace(string(payload))
	if line == "" {
		return
	}
	_, rsp := Topics(b.Prefix)

	b.mu.Lock()
	defer b.mu.Unlock()

	glog.V(1).Infof("cmd %q", line)
	res, err := b.Client.Exec(line)
	if err != nil {
		glog.Errorf("exec %q: %v", line, err)
		b.Publish(rsp, []byte(protocol.TagError+err.Error()))
		b.Publish(rsp, []byte(protocol.TagEndErr))
		return
	}
	for _, r := range res.Responses {
		b.Publish(rsp, []byte(r.Raw))
	}
	if res.OK {
		b.Publish(rsp, []byte(protocol.TagEndOK))
	} else {
		b.Publish(rsp, []byte(protocol.TagEndErr))
	}
}
