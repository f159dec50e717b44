package hashsync

import "strings"

// ClientScript returns the browser side of the bridge for a bridge served at
// path.
func ClientScript(path string) string {
	return strings.ReplaceAll(clientScript, "{{path}}", path)
}

const clientScript = `<script>
(function() {
    'use strict';
    var ws = null;
    var delay = 1000;

    function report() {
        if (ws && ws.readyState === 1) {
            ws.send(JSON.stringify({type: 'hash', token: location.hash.substr(1)}));
        }
    }

    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        ws = new WebSocket(protocol + '//' + location.host + '{{path}}');
        ws.onopen = function() {
            delay = 1000;
            report();
        };
        ws.onmessage = function(e) {
            var msg;
            try { msg = JSON.parse(e.data); } catch (err) { return; }
            if (msg.type === 'navigate' && location.hash.substr(1) !== msg.token) {
                location.hash = '#' + msg.token;
            }
        };
        ws.onclose = function() {
            setTimeout(function() {
                delay = Math.min(delay * 2, 30000);
                connect();
            }, delay);
        };
    }

    window.addEventListener('hashchange', report);
    connect();
})();
</script>`
