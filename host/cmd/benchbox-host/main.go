package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/abiosoft/ishell/v2"
	"github.com/google/shlex"

	"benchbox/host"
	"benchbox/host/serial"
)

var (
	device  = flag.String("device", "", "serial device path (e.g. /dev/ttyACM0)")
	baud    = flag.Int("baud", 115200, "baud rate (ignored for USB CDC)")
	connect = flag.String("connect", "", "TCP address of a simulated instrument")
	eval    = flag.String("e", "", "evaluate commands and exit; quote each multi-word command")
)

func main() {
	flag.Parse()

	client, target, err := dial()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	if err := client.Handshake(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *eval != "" {
		os.Exit(evalCommands(client))
	}

	console(client, target)
}

func dial() (*host.Client, string, error) {
	switch {
	case *connect != "":
		conn, err := net.Dial("tcp", *connect)
		if err != nil {
			return nil, "", fmt.Errorf("connect %s: %w", *connect, err)
		}
		return host.NewClient(conn), *connect, nil
	case *device != "":
		cfg := serial.DefaultConfig(*device)
		cfg.Baud = *baud
		client, err := host.ConnectWithConfig(cfg)
		if err != nil {
			return nil, "", err
		}
		return client, *device, nil
	default:
		return nil, "", fmt.Errorf("one of -device or -connect is required")
	}
}

// evalCommands runs the -e commands in order and reports the worst exit
// status. Shell-style quoting marks command boundaries, so
// -e "version 'dac write 0 100'" sends two commands.
func evalCommands(client *host.Client) int {
	cmds, err := shlex.Split(*eval)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: bad -e value: %v\n", err)
		return 1
	}
	status := 0
	for _, cmd := range cmds {
		res, err := client.Exec(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		for _, resp := range res.Responses {
			fmt.Println(resp.Raw)
		}
		if !res.OK {
			fmt.Fprintf(os.Stderr, "Error: %q failed\n", cmd)
			status = 1
		}
	}
	return status
}

func console(client *host.Client, target string) {
	sh := ishell.New()
	sh.Println("Benchbox Host")
	sh.Printf("Connected to %s (version %s, machine %s)\n", target, client.Version, client.Machine)
	sh.SetPrompt(target + " > ")

	forward := func(verb string) func(c *ishell.Context) {
		return func(c *ishell.Context) {
			run(c, client, strings.Join(append([]string{verb}, c.Args...), " "))
		}
	}

	sh.AddCmd(&ishell.Cmd{
		Name: "gpio",
		Help: "gpio <get|set|clear|config> port <name> pin <name> ...",
		Func: forward("gpio"),
	})
	sh.AddCmd(&ishell.Cmd{
		Name: "dac",
		Help: "dac <write|reset|help> ...",
		Func: forward("dac"),
	})
	sh.AddCmd(&ishell.Cmd{
		Name: "version",
		Help: "report instrument version",
		Func: forward("version"),
	})
	sh.AddCmd(&ishell.Cmd{
		Name: "resetpins",
		Help: "reset all pins to default state",
		Func: forward("resetpins"),
	})
	sh.AddCmd(&ishell.Cmd{
		Name: "send",
		Help: "send a raw command line",
		Func: func(c *ishell.Context) {
			run(c, client, strings.Join(c.Args, " "))
		},
	})

	sh.Run()
}

func run(c *ishell.Context, client *host.Client, line string) {
	if strings.TrimSpace(line) == "" {
		c.Err(fmt.Errorf("empty command"))
		return
	}
	res, err := client.Exec(line)
	if err != nil {
		c.Err(err)
		return
	}
	for _, resp := range res.Responses {
		c.Println(resp.Raw)
	}
	if res.OK {
		c.Println("OK")
	} else {
		c.Err(fmt.Errorf("command failed"))
	}
}
