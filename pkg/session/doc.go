/*
Package session implements session management and persistence orchestration.

A Manager serializes access to each shopper's State. Within one process a
reference-counted mutex per session ID guards the load, dispatch and save
cycle. Across replicas an optional DistributedLocker (Redis) does the same.
*/
package session
