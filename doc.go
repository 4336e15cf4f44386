// Package horaedb - Go client for HoraeDB.
/*
In Direct mode the client resolves the owner of every table with Route calls to
the bootstrap endpoint, caches the routes and sends requests straight to the owners.
In Proxy mode every request is sent to the bootstrap endpoint.
*/
package horaedb
