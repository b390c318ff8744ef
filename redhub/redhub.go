// Package redhub provides a high-performance RESP server framework built
// on top of gnet. It owns connection lifecycle and I/O; request parsing,
// dispatch and response encoding are delegated to a session.Handler
// created per connection.
package redhub

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/gnet/v2"
	"github.com/rsms/go-log"
	"github.com/rsms/go-uuid"

	"github.com/IceFireDB/vredis/session"
)

// Action mirrors gnet.Action so callers do not need to import gnet
// directly for the common cases.
type Action int

const (
	None Action = iota
	Close
	Shutdown
)

// Conn wraps a gnet.Conn, adding the correlation ID assigned at OnOpen.
type Conn struct {
	gnet.Conn
	ID string
}

func (c *Conn) SetContext(ctx interface{}) { c.Conn.SetContext(ctx) }
func (c *Conn) Context() interface{}       { return c.Conn.Context() }

// Options configures the gnet engine underneath a RedHub server.
type Options struct {
	Multicore        bool
	LockOSThread     bool
	ReadBufferCap    int
	LB               gnet.LoadBalancing
	NumEventLoop     int
	ReusePort        bool
	Ticker           bool
	TCPKeepAlive     time.Duration
	TCPKeepCount     int
	TCPKeepInterval  time.Duration
	TCPNoDelay       gnet.TCPSocketOpt
	SocketRecvBuffer int
	SocketSendBuffer int
	EdgeTriggeredIO  bool

	TLSListenEnable bool
	TLSCertFile     string
	TLSKeyFile      string
	TLSAddr         string
}

// HandlerFactory builds a fresh command.Handler-backed session.Handler
// for each newly accepted connection. Most servers close over a single
// shared *store.Database and return session.NewHandler(db) unconditionally;
// the factory exists so tests and multi-tenant setups can vary it.
type HandlerFactory func(c *Conn) *session.Handler

// RedHub implements gnet.EventHandler, translating raw connection
// traffic into session.Handler calls and writing back whatever the
// session queues up.
type RedHub struct {
	newSession  HandlerFactory
	onOpened    func(c *Conn)
	onClosed    func(c *Conn, err error)
	logger      *log.Logger
	connSync    sync.RWMutex
	sessions    map[gnet.Conn]*session.Handler
	mu          sync.Mutex
	addr        string
	tcpAddr     string
	running     bool
	engine      gnet.Engine
	tlsListener net.Listener
}

// NewRedHub creates a RedHub. onOpened/onClosed may be nil. logger may be
// nil, in which case connection lifecycle events are not logged.
func NewRedHub(newSession HandlerFactory, onOpened func(c *Conn), onClosed func(c *Conn, err error), logger *log.Logger) *RedHub {
	return &RedHub{
		newSession: newSession,
		onOpened:   onOpened,
		onClosed:   onClosed,
		logger:     logger,
		sessions:   make(map[gnet.Conn]*session.Handler),
	}
}

func (rs *RedHub) OnBoot(eng gnet.Engine) (action gnet.Action) {
	rs.mu.Lock()
	rs.engine = eng
	rs.mu.Unlock()
	return gnet.None
}

func (rs *RedHub) OnShutdown(eng gnet.Engine) {}

func (rs *RedHub) OnOpen(c gnet.Conn) (out []byte, action gnet.Action) {
	id := uuid.MustGen().String()
	conn := &Conn{Conn: c, ID: id}
	c.SetContext(conn)

	rs.connSync.Lock()
	rs.sessions[c] = rs.newSession(conn)
	rs.connSync.Unlock()

	if rs.logger != nil {
		rs.logger.Info("conn %s opened from %s", id, c.RemoteAddr())
	}
	if rs.onOpened != nil {
		rs.onOpened(conn)
	}
	return nil, gnet.None
}

func (rs *RedHub) OnClose(c gnet.Conn, err error) (action gnet.Action) {
	rs.connSync.Lock()
	sh, ok := rs.sessions[c]
	delete(rs.sessions, c)
	rs.connSync.Unlock()
	if ok {
		sh.HandleConnectionClose()
	}

	conn, _ := c.Context().(*Conn)
	if conn == nil {
		conn = &Conn{Conn: c}
	}
	if rs.logger != nil {
		if err != nil {
			rs.logger.Warn("conn %s closed: %v", conn.ID, err)
		} else {
			rs.logger.Debug("conn %s closed", conn.ID)
		}
	}
	if rs.onClosed != nil {
		rs.onClosed(conn, err)
	}
	return gnet.None
}

// OnTraffic feeds newly-arrived bytes to the connection's session.Handler
// and drains every buffer it queues in response, closing the connection
// if the session demands it.
func (rs *RedHub) OnTraffic(c gnet.Conn) (action gnet.Action) {
	rs.connSync.RLock()
	sh, ok := rs.sessions[c]
	rs.connSync.RUnlock()
	if !ok {
		return gnet.Close
	}

	buf, _ := c.Next(-1)
	if len(buf) == 0 {
		return gnet.None
	}
	sh.HandleData(buf)

	for {
		op := sh.GetOperation()
		if op.Send != nil {
			if _, err := c.Write(op.Send); err != nil {
				return gnet.Close
			}
			continue
		}
		if op.Close {
			return gnet.Close
		}
		break
	}
	return gnet.None
}

func (rs *RedHub) OnTick() (delay time.Duration, action gnet.Action) {
	return 0, gnet.None
}

func deriveTLSAddr(tcpAddr string) string {
	if !strings.HasPrefix(tcpAddr, "tcp://") {
		return ""
	}
	hostPort := strings.TrimPrefix(tcpAddr, "tcp://")
	host, portStr, err := net.SplitHostPort(hostPort)
	if err != nil {
		return ""
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return ""
	}
	return "tcp://" + net.JoinHostPort(host, strconv.Itoa(port+1))
}

func (rs *RedHub) startTLSListener(options Options) error {
	cert, err := tls.LoadX509KeyPair(options.TLSCertFile, options.TLSKeyFile)
	if err != nil {
		return err
	}

	tlsAddr := options.TLSAddr
	if tlsAddr == "" {
		tlsAddr = deriveTLSAddr(rs.tcpAddr)
		if tlsAddr == "" {
			return errors.New("failed to derive TLS address from TCP address")
		}
	}
	listenAddr := strings.TrimPrefix(tlsAddr, "tcp://")

	rs.tlsListener, err = tls.Listen("tcp", listenAddr, &tls.Config{Certificates: []tls.Certificate{cert}})
	if err != nil {
		return err
	}

	tcpForwardAddr := strings.TrimPrefix(rs.tcpAddr, "tcp://")
	go rs.acceptTLSConnections(tcpForwardAddr)
	return nil
}

func (rs *RedHub) acceptTLSConnections(tcpAddr string) {
	for {
		tlsConn, err := rs.tlsListener.Accept()
		if err != nil {
			if !rs.running {
				return
			}
			continue
		}
		go rs.handleTLSConn(tlsConn, tcpAddr)
	}
}

func (rs *RedHub) handleTLSConn(tlsConn net.Conn, tcpAddr string) {
	defer tlsConn.Close()
	tcpConn, err := net.Dial("tcp", tcpAddr)
	if err != nil {
		return
	}
	defer tcpConn.Close()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		buf := make([]byte, 4096)
		for {
			n, err := tlsConn.Read(buf)
			if err != nil {
				return
			}
			if _, err := tcpConn.Write(buf[:n]); err != nil {
				return
			}
		}
	}()
	go func() {
		defer wg.Done()
		buf := make([]byte, 4096)
		for {
			n, err := tcpConn.Read(buf)
			if err != nil {
				return
			}
			if _, err := tlsConn.Write(buf[:n]); err != nil {
				return
			}
		}
	}()
	wg.Wait()
}

// ListenAndServe starts rh on addr (format "tcp://host:port") and blocks
// until the server stops.
func ListenAndServe(addr string, options Options, rh *RedHub) error {
	if options.TLSListenEnable && (options.TLSCertFile == "" || options.TLSKeyFile == "") {
		return errors.New("TLSListenEnable requires TLSCertFile and TLSKeyFile")
	}

	var opts []gnet.Option
	if options.Multicore {
		opts = append(opts, gnet.WithMulticore(true))
	}
	if options.LockOSThread {
		opts = append(opts, gnet.WithLockOSThread(true))
	}
	if options.ReadBufferCap > 0 {
		opts = append(opts, gnet.WithReadBufferCap(options.ReadBufferCap))
	}
	if options.NumEventLoop > 0 {
		opts = append(opts, gnet.WithNumEventLoop(options.NumEventLoop))
	} else if options.LB != gnet.RoundRobin {
		opts = append(opts, gnet.WithLoadBalancing(options.LB))
	}
	if options.ReusePort {
		opts = append(opts, gnet.WithReusePort(true))
	}
	if options.Ticker {
		opts = append(opts, gnet.WithTicker(true))
	}
	if options.TCPKeepAlive > 0 {
		opts = append(opts, gnet.WithTCPKeepAlive(options.TCPKeepAlive))
	}
	if options.TCPKeepCount > 0 {
		opts = append(opts, gnet.WithTCPKeepCount(options.TCPKeepCount))
	}
	if options.TCPKeepInterval > 0 {
		opts = append(opts, gnet.WithTCPKeepInterval(options.TCPKeepInterval))
	}
	opts = append(opts, gnet.WithTCPNoDelay(options.TCPNoDelay))
	if options.SocketRecvBuffer > 0 {
		opts = append(opts, gnet.WithSocketRecvBuffer(options.SocketRecvBuffer))
	}
	if options.SocketSendBuffer > 0 {
		opts = append(opts, gnet.WithSocketSendBuffer(options.SocketSendBuffer))
	}
	if options.EdgeTriggeredIO {
		opts = append(opts, gnet.WithEdgeTriggeredIO(true))
	}

	rh.mu.Lock()
	rh.addr = addr
	rh.tcpAddr = addr
	rh.running = true
	rh.mu.Unlock()

	if options.TLSListenEnable {
		if err := rh.startTLSListener(options); err != nil {
			rh.mu.Lock()
			rh.running = false
			rh.mu.Unlock()
			return err
		}
	}

	err := gnet.Run(rh, addr, opts...)

	rh.mu.Lock()
	rh.running = false
	rh.mu.Unlock()
	if rh.tlsListener != nil {
		rh.tlsListener.Close()
	}
	return err
}

// Close stops the engine and any TLS proxy listener.
func (rs *RedHub) Close() error {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if !rs.running {
		return errors.New("server not running")
	}
	rs.running = false
	if rs.tlsListener != nil {
		_ = rs.tlsListener.Close()
	}
	return rs.engine.Stop(context.Background())
}
