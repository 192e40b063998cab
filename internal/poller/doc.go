// Package poller runs the notification synchronization cycle.
//
// Each tick prunes the cache to the rolling window, fetches threads updated
// inside that window, stores only ids the cache has not seen and raises one
// alert summarizing how many arrived. Fetch and write failures end the run so
// a broken token or database surfaces immediately instead of being retried
// forever; alert failures never do.
package poller
