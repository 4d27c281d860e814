/*
Package session serializes the events of each solving session.

A Manager loads the session state from a ports.StateStore, runs one engine
transition under the session lock, and persists the result. Locks are
reference counted and dropped once no caller holds them; a
ports.DistributedLocker extends the guarantee across replicas.
*/
package session
