package dev

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/hashview/pkg/hashsync"
)

// ReloadPath is where the reload socket is served.
const ReloadPath = "/_hashview/reload"

// ReloadServer pushes rebuild results to browsers. It speaks the same
// hashsync.Message framing as the fragment bridge on its own socket, so the
// bridge keeps working when live reload is off.
type ReloadServer struct {
	peers    hashsync.Peers
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewReloadServer creates a reload server. A nil logger uses slog.Default().
func NewReloadServer(logger *slog.Logger) *ReloadServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReloadServer{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger: logger.With("component", "reload"),
	}
}

// HandleWebSocket serves one browser until it disconnects. Browsers only
// listen on this socket; anything they send is ignored.
func (r *ReloadServer) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := r.upgrader.Upgrade(w, req, nil)
	if err != nil {
		r.logger.Debug("upgrade failed", "error", err)
		return
	}
	r.logger.Debug("browser connected", "remote", req.RemoteAddr)
	r.peers.Serve(r.peers.Join(conn), r.logger, nil)
}

// NotifyReload asks every browser to reload the page.
func (r *ReloadServer) NotifyReload() {
	r.send(hashsync.Message{Type: hashsync.TypeReload})
}

// NotifyCSS asks every browser to refetch its stylesheets after file changed.
func (r *ReloadServer) NotifyCSS(file string) {
	r.send(hashsync.Message{Type: hashsync.TypeCSS, File: file})
}

// NotifyError shows msg in the build error overlay.
func (r *ReloadServer) NotifyError(msg string) {
	r.send(hashsync.Message{Type: hashsync.TypeError, Error: msg})
}

// ClearError hides the overlay.
func (r *ReloadServer) ClearError() {
	r.send(hashsync.Message{Type: hashsync.TypeClear})
}

func (r *ReloadServer) send(msg hashsync.Message) {
	r.peers.Broadcast(msg, r.logger)
}

// ClientCount returns the number of connected browsers.
func (r *ReloadServer) ClientCount() int {
	return r.peers.Len()
}

// Close disconnects every browser.
func (r *ReloadServer) Close() {
	r.peers.Close()
}

// InjectScripts inserts scripts before </body>, else before </html>, else
// at the end.
func InjectScripts(page string, scripts ...string) string {
	joined := strings.Join(scripts, "\n")
	if idx := strings.LastIndex(page, "</body>"); idx != -1 {
		return page[:idx] + joined + page[idx:]
	}
	if idx := strings.LastIndex(page, "</html>"); idx != -1 {
		return page[:idx] + joined + page[idx:]
	}
	return page + joined
}

// DevClientScript listens on ReloadPath. Stylesheet links get a fresh query
// string on css; build errors replace the page body with an overlay element
// until the next clear or reload.
const DevClientScript = `<script>
(function() {
    'use strict';
    var delay = 1000;
    var overlayID = 'hashview-build-error';

    function restyle() {
        var links = document.querySelectorAll('link[rel="stylesheet"]');
        for (var i = 0; i < links.length; i++) {
            var url = new URL(links[i].href);
            url.searchParams.set('v', Date.now());
            links[i].href = url.toString();
        }
    }

    function clear() {
        var el = document.getElementById(overlayID);
        if (el) { el.parentNode.removeChild(el); }
    }

    function show(text) {
        clear();
        var el = document.createElement('pre');
        el.id = overlayID;
        el.textContent = text;
        el.style.cssText = 'position:fixed;inset:0;margin:0;padding:2em;z-index:2147483647;' +
            'overflow:auto;white-space:pre-wrap;background:#111;color:#f66;font:13px monospace;';
        document.body.appendChild(el);
    }

    var handlers = {
        reload: function() { location.reload(); },
        css: restyle,
        error: function(msg) { show(msg.error); },
        clear: clear
    };

    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        var ws = new WebSocket(protocol + '//' + location.host + '` + ReloadPath + `');
        ws.onopen = function() { delay = 1000; };
        ws.onmessage = function(e) {
            var msg;
            try { msg = JSON.parse(e.data); } catch (err) { return; }
            var fn = handlers[msg.type];
            if (fn) { fn(msg); }
        };
        ws.onclose = function() {
            setTimeout(function() {
                delay = Math.min(delay * 2, 30000);
                connect();
            }, delay);
        };
    }

    connect();
})();
</script>
`
