package debug

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Versifine/stride/internal/locomotion"
	"github.com/Versifine/stride/internal/sim"
	"golang.org/x/term"
)

const (
	defaultRenderInterval = 50 * time.Millisecond
	defaultMovePulse      = 180 * time.Millisecond
	yawStep               = 5.0
)

// Status is the character state shown on the status line. It is captured
// on the simulation goroutine and rendered from the console goroutine.
type Status struct {
	Tick             uint64
	Position         locomotion.Vec3
	Heading          float64
	VerticalVelocity float64
	CameraYaw        float64
	Grounded         bool
	Moving           bool
}

// Console turns raw terminal keys into character intent. Keys are read on
// the console goroutine; Update applies them on the simulation goroutine.
type Console struct {
	in             io.Reader
	out            io.Writer
	renderInterval time.Duration
	movePulse      time.Duration
	now            func() time.Time

	mu            sync.Mutex
	outMu         sync.Mutex
	forwardUntil  time.Time
	backwardUntil time.Time
	leftUntil     time.Time
	rightUntil    time.Time
	yawDelta      float64
	cameraYaw     *float64
	jumpPending   bool
	teleport      *locomotion.Vec3
	status        Status
	commandMode   bool
	commandBuf    []rune
	statusWidth   int
}

type Option func(*Console)

func WithIO(in io.Reader, out io.Writer) Option {
	return func(c *Console) {
		c.in = in
		c.out = out
	}
}

func WithMovePulse(d time.Duration) Option {
	return func(c *Console) {
		if d > 0 {
			c.movePulse = d
		}
	}
}

func NewConsole(opts ...Option) *Console {
	c := &Console{
		in:             os.Stdin,
		out:            os.Stdout,
		renderInterval: defaultRenderInterval,
		movePulse:      defaultMovePulse,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start puts the terminal in raw mode when stdin is a tty and reads keys
// until ctx is done or input ends.
func (c *Console) Start(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("console is nil")
	}

	if f, ok := c.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("set terminal raw mode: %w", err)
		}
		defer func() {
			_ = term.Restore(fd, oldState)
			c.print("\r\n")
		}()
	}

	c.print("[debug] console started (W/A/S/D pulse, Space jump, arrows camera, X clear, : command)\r\n")
	c.renderStatusLine()

	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.renderLoop(ctx)
	}()
	defer wg.Wait()
	defer cancel()

	keys := make(chan byte)
	errc := make(chan error, 1)
	reader := bufio.NewReader(c.in)
	go func() {
		for {
			b, err := reader.ReadByte()
			if err != nil {
				errc <- err
				return
			}
			select {
			case keys <- b:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errc:
			if err == io.EOF || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read console input: %w", err)
		case b := <-keys:
			if b == 3 { // Ctrl-C in raw mode
				return context.Canceled
			}
			c.handleKey(b, keys)
		}
	}
}

// Update applies pending key state to the character. It must run on the
// goroutine that steps the controller.
func (c *Console) Update(ch *sim.Character) {
	c.mu.Lock()
	c.expirePulsesLocked(c.now())
	axis := c.axisLocked().Normalize()
	cameraYaw := c.cameraYaw
	c.cameraYaw = nil
	yawDelta := c.yawDelta
	c.yawDelta = 0
	jump := c.jumpPending
	c.jumpPending = false
	teleport := c.teleport
	c.teleport = nil
	c.mu.Unlock()

	if cameraYaw != nil {
		ch.Camera.SetYaw(*cameraYaw)
	}
	if yawDelta != 0 {
		ch.Camera.Rotate(yawDelta)
	}
	if teleport != nil {
		ch.World.Teleport(*teleport)
	}
	ch.Controller.SetMoveInput(axis)
	ch.Controller.SetLookDirection(axis)
	if jump {
		ch.Controller.RequestJump()
	}

	state := ch.Controller.State()
	status := Status{
		Tick:             ch.Controller.Ticks(),
		Position:         ch.World.Position(),
		Heading:          state.Heading,
		VerticalVelocity: state.VerticalVelocity,
		CameraYaw:        ch.Camera.Yaw(),
		Grounded:         state.Grounded,
		Moving:           ch.Controller.Intent().HasMoveInput(),
	}
	c.mu.Lock()
	c.status = status
	c.mu.Unlock()
}

func (c *Console) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *Console) renderLoop(ctx context.Context) {
	ticker := time.NewTicker(c.renderInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.renderStatusLine()
		}
	}
}

func (c *Console) handleKey(b byte, next <-chan byte) {
	if c.isCommandMode() {
		c.handleCommandByte(b)
		return
	}

	switch b {
	case ':':
		c.enterCommandMode()
		return
	case 'w', 'W':
		c.pulse(&c.forwardUntil, &c.backwardUntil)
	case 's', 'S':
		c.pulse(&c.backwardUntil, &c.forwardUntil)
	case 'a', 'A':
		c.pulse(&c.leftUntil, &c.rightUntil)
	case 'd', 'D':
		c.pulse(&c.rightUntil, &c.leftUntil)
	case ' ':
		c.mu.Lock()
		c.jumpPending = true
		c.mu.Unlock()
	case 'x', 'X':
		c.clearInput()
	case 27: // ESC + arrow sequence
		if readByte(next) != '[' {
			return
		}
		switch readByte(next) {
		case 'D': // left
			c.adjustYaw(-yawStep)
		case 'C': // right
			c.adjustYaw(yawStep)
		}
	}
	c.renderStatusLine()
}

func readByte(next <-chan byte) byte {
	select {
	case b := <-next:
		return b
	case <-time.After(25 * time.Millisecond):
		return 0
	}
}

func (c *Console) enterCommandMode() {
	c.mu.Lock()
	c.commandMode = true
	c.commandBuf = c.commandBuf[:0]
	c.mu.Unlock()
	c.print("\r\n:")
}

func (c *Console) handleCommandByte(b byte) {
	switch b {
	case 13, 10: // Enter
		c.mu.Lock()
		cmd := strings.TrimSpace(string(c.commandBuf))
		c.commandMode = false
		c.commandBuf = c.commandBuf[:0]
		c.mu.Unlock()

		c.print("\r\n")
		if cmd != "" {
			c.executeCommand(cmd)
		}
		c.renderStatusLine()
		return
	case 27: // ESC cancel command mode
		c.mu.Lock()
		c.commandMode = false
		c.commandBuf = c.commandBuf[:0]
		c.mu.Unlock()
		c.print("\r\n[debug] command cancelled\r\n")
		c.renderStatusLine()
		return
	case 8, 127: // Backspace
		c.mu.Lock()
		if len(c.commandBuf) > 0 {
			c.commandBuf = c.commandBuf[:len(c.commandBuf)-1]
		}
		buf := string(c.commandBuf)
		c.mu.Unlock()
		c.print(fmt.Sprintf("\r:%s \r:%s", buf, buf))
		return
	default:
		if b < 32 || b > 126 {
			return
		}
		c.mu.Lock()
		c.commandBuf = append(c.commandBuf, rune(b))
		buf := string(c.commandBuf)
		c.mu.Unlock()
		c.print("\r:" + buf)
	}
}

func (c *Console) executeCommand(cmd string) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case "help":
		c.printHelp()
	case "state":
		s := c.Status()
		c.print(fmt.Sprintf("[debug] tick=%d pos=(%.3f,%.3f,%.3f) heading=%.1f vy=%.3f ground=%t camera=%.1f\r\n",
			s.Tick,
			s.Position.X, s.Position.Y, s.Position.Z,
			s.Heading, s.VerticalVelocity, s.Grounded, s.CameraYaw,
		))
	case "tp":
		if len(parts) != 4 {
			c.print("[debug] usage: :tp <x> <y> <z>\r\n")
			return
		}
		x, err1 := strconv.ParseFloat(parts[1], 64)
		y, err2 := strconv.ParseFloat(parts[2], 64)
		z, err3 := strconv.ParseFloat(parts[3], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			c.print("[debug] invalid tp args\r\n")
			return
		}
		pos := locomotion.Vec3{X: x, Y: y, Z: z}
		c.mu.Lock()
		c.teleport = &pos
		c.mu.Unlock()
		slog.Debug("debug teleport queued", "x", x, "y", y, "z", z)
		c.print(fmt.Sprintf("[debug] tp queued to (%.3f, %.3f, %.3f)\r\n", x, y, z))
	case "cam":
		if len(parts) != 2 {
			c.print("[debug] usage: :cam <yaw>\r\n")
			return
		}
		yaw, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			c.print("[debug] invalid yaw\r\n")
			return
		}
		// An absolute target replaces any turn queued before it.
		c.mu.Lock()
		c.cameraYaw = &yaw
		c.yawDelta = 0
		c.mu.Unlock()
	default:
		c.print(fmt.Sprintf("[debug] unknown command: %s\r\n", parts[0]))
	}
}

func (c *Console) printHelp() {
	c.print("[debug] keys:\r\n" +
		"  W/S/A/D: pulse movement (~180ms)\r\n" +
		"  Space: jump\r\n" +
		"  Arrow Left/Right: camera yaw -/+5\r\n" +
		"  X: clear all input\r\n" +
		"  : enter command mode\r\n" +
		"[debug] commands:\r\n" +
		"  :tp <x> <y> <z>\r\n" +
		"  :cam <yaw>\r\n" +
		"  :state\r\n" +
		"  :help\r\n")
}

func (c *Console) renderStatusLine() {
	c.mu.Lock()
	if c.commandMode {
		c.mu.Unlock()
		return
	}
	s := c.status
	axis := c.axisLocked()
	width := c.statusWidth
	c.mu.Unlock()

	line := fmt.Sprintf(
		"[STICK:%+.0f,%+.0f | CAM:%.1f HDG:%.1f | X:%.2f Y:%.2f Z:%.2f vy:%.2f ground:%t]",
		axis.X, axis.Z,
		s.CameraYaw,
		s.Heading,
		s.Position.X, s.Position.Y, s.Position.Z,
		s.VerticalVelocity,
		s.Grounded,
	)

	padding := ""
	if width > len(line) {
		padding = strings.Repeat(" ", width-len(line))
	}
	c.print("\r" + line + padding)

	c.mu.Lock()
	if len(line) > c.statusWidth {
		c.statusWidth = len(line)
	}
	c.mu.Unlock()
}

func (c *Console) print(s string) {
	c.outMu.Lock()
	defer c.outMu.Unlock()
	_, _ = io.WriteString(c.out, s)
}

func (c *Console) adjustYaw(delta float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.yawDelta += delta
}

func (c *Console) isCommandMode() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.commandMode
}

// pulse holds one direction for movePulse and cancels its opposite.
func (c *Console) pulse(until, opposite *time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	*until = c.now().Add(c.movePulse)
	*opposite = time.Time{}
}

func (c *Console) expirePulsesLocked(now time.Time) {
	for _, until := range []*time.Time{&c.forwardUntil, &c.backwardUntil, &c.leftUntil, &c.rightUntil} {
		if !until.IsZero() && !now.Before(*until) {
			*until = time.Time{}
		}
	}
}

// axisLocked maps held directions to a camera-relative stick: X is right,
// Z is forward.
func (c *Console) axisLocked() locomotion.Vec3 {
	var axis locomotion.Vec3
	if !c.forwardUntil.IsZero() {
		axis.Z++
	}
	if !c.backwardUntil.IsZero() {
		axis.Z--
	}
	if !c.rightUntil.IsZero() {
		axis.X++
	}
	if !c.leftUntil.IsZero() {
		axis.X--
	}
	return axis
}

func (c *Console) clearInput() {
	c.mu.Lock()
	c.forwardUntil = time.Time{}
	c.backwardUntil = time.Time{}
	c.leftUntil = time.Time{}
	c.rightUntil = time.Time{}
	c.yawDelta = 0
	c.cameraYaw = nil
	c.jumpPending = false
	c.mu.Unlock()
}
