/*
Package portcfg edits the configuration of input and output ports in a dataflow
service.

A port is opened from a canvas selection into an edit session. The session holds
a dialog-scoped copy of the port's name, comments, enabled and remote access
checkboxes and concurrent task count. Applying the session sends one update
request to the port's URI. The request carries the revision the client last saw
and the operator's acknowledgement of disconnected cluster nodes.

# Outcomes

  - Applied: the returned entity replaces the cached port model, the flow view is
    asked to refresh and the dialog closes.
  - Rejected: the service answered 400. Its messages are shown above the dialog,
    which stays open with the operator's values.
  - Failed: any other error, including a stale revision. The dialog closes and the
    error is reported.

# Layout

The editor lives in pkg/editor and depends only on the interfaces in pkg/ports.
Adapters provide an HTTP client and a reference service (pkg/adapters/http,
pkg/flow), port model stores (memory, file, redis), Loam fixtures and an MCP
server. The portcfg command wires them together:

	portcfg serve --fixtures ./ports
	portcfg show input in-1
	portcfg configure input in-1 --name ingress --tasks 4
	portcfg cache ls
*/
package portcfg
