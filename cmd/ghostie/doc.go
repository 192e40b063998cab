// Command ghostie keeps a local cache of GitHub notifications in sync and
// offers commands to run the sync daemon, inspect the cache, and browse it.
package main
