/*
Package ports defines the driven ports (interfaces) of the storefront.

These interfaces decouple the cart and navigation logic from external
implementations, so the same engine works with different catalog sources,
storage backends and lock providers.

# Key Interfaces

  - Catalog: Read-only access to products grouped by category.
  - StateStore: Responsible for persisting and loading session State.
  - DistributedLocker: Provides distributed locking for concurrent session access.
  - Engine: The stateless core used by adapters (HTTP, MCP, terminal).
*/
package ports
