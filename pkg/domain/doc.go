/*
Package domain contains the core domain models for portcfg.

It defines the port entity as the flow service represents it, the revision token that
guards every write, the outbound update request, and the EditSession value object the
editor owns while its dialog is open. This package is kept pure and free of I/O,
following Hexagonal Architecture principles.

# Key Entities

  - PortEntity: The canonical representation of a port returned by the service.
  - Revision: The optimistic-concurrency token echoed back on every update.
  - EditSession: The dialog-scoped copy of a port's editable fields.
  - PortUpdateRequest: The body of the PUT sent to the port's URI.
*/
package domain
