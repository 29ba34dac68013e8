/*
Package ports defines the driven ports (interfaces) of the port configuration editor.

These interfaces decouple the editor from the canvas that supplies selections, the
remote service that applies updates, the local cache of port entities and the UI
that shows notices, so the same editor runs behind a terminal, an MCP server or a test.

# Key Interfaces

  - Selection / Canvas: The selected graph element and the capability predicates.
  - PortUpdater: Submits an update to the port's URI.
  - PortStore: Client-side cache of port entities (memory, file, redis).
  - Notifier, NoticePresenter, ErrorHandler: The UI collaborators.
*/
package ports
