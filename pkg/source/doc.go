// Package source retrieves level and design documents from the Fantastic
// Contraption level service.
//
// The service exposes a single endpoint, retrieveLevel.php, which takes a
// form-encoded POST with the numeric id and a loadDesign flag (1 for a
// player design, 0 for a bare level) and answers with a retrieveLevel XML
// document. [Client.Fetch] wraps that call with a file cache (see
// [httputil.Cache]) and retries transient failures with exponential
// backoff.
//
//	c := source.NewClient(source.Options{Cache: cache, Logger: logger})
//	xml, cached, err := c.Fetch(ctx, 1234, source.ModeDesign, false)
//
// Published levels and designs do not change, so cached documents are
// served until their TTL runs out or the caller asks for a refresh.
package source
