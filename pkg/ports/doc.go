/*
Package ports defines the driven ports (interfaces) for the Balance engine.

These interfaces decouple the equation engine from external implementations,
allowing it to work with various puzzle sources, session stores and lock managers.

# Key Interfaces

  - PuzzleCatalog: Supplies read-only puzzle templates (memory, Loam directory).
  - StateStore: Keeps session State between events (memory, Redis).
  - DistributedLocker: Serializes events of one session across replicas.
  - StatelessEngine: The engine as consumed by HTTP and MCP adapters.
*/
package ports
