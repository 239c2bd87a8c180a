package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"

	"benchbox/bridge"
	"benchbox/host"
	"benchbox/host/serial"
)

var (
	broker   = flag.String("broker", "tcp://localhost:1883", "MQTT broker address")
	clientID = flag.String("client-id", "benchbox-bridge", "MQTT client id")
	prefix   = flag.String("prefix", "benchbox", "topic prefix; commands on <prefix>/cmd, responses on <prefix>/rsp")
	device   = flag.String("device", "", "serial device path (e.g. /dev/ttyACM0)")
	baud     = flag.Int("baud", 115200, "baud rate (ignored for USB CDC)")
	connect  = flag.String("connect", "", "TCP address of a simulated instrument")
)

func main() {
	flag.Parse()

	client, err := dial()
	if err != nil {
		glog.Exitf("%v", err)
	}
	defer client.Close()

	if err := client.Handshake(); err != nil {
		glog.Exitf("handshake: %v", err)
	}
	glog.Infof("instrument version %s machine %s", client.Version, client.Machine)

	br := &bridge.Bridge{Prefix: *prefix, Client: client}

	opts := paho.NewClientOptions().
		AddBroker(*broker).
		SetClientID(*clientID).
		SetAutoReconnect(true).
		SetCleanSession(true)
	opts.SetOnConnectHandler(func(c paho.Client) {
		glog.Infof("connected to %s", *broker)
		br.Listen(c)
	})
	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		glog.Warningf("broker connection lost: %v", err)
	})

	mq := paho.NewClient(opts)
	br.Publish = func(topic string, payload []byte) {
		mq.Publish(topic, 0, false, payload)
	}

	if token := mq.Connect(); token.Wait() && token.Error() != nil {
		glog.Exitf("broker connect: %v", token.Error())
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	glog.Info("shutting down")
	mq.Disconnect(250)
}

func dial() (*host.Client, error) {
	switch {
	case *connect != "":
		conn, err := net.Dial("tcp", *connect)
		if err != nil {
			return nil, fmt.Errorf("connect %s: %w", *connect, err)
		}
		return host.NewClient(conn), nil
	case *device != "":
		cfg := serial.DefaultConfig(*device)
		cfg.Baud = *baud
		return host.ConnectWithConfig(cfg)
	default:
		return nil, fmt.Errorf("one of -device or -connect is required")
	}
}
