// Package services holds the session store and the resource contexts of the
// shopadmin client.
//
// The SessionStore owns the authenticated identity. Every resource context
// (products, partners, categories, quotations, contact submissions) keeps the
// last fetched snapshot of one backend collection, subscribes to the session
// and fetches only while authenticated. Mutations never patch a snapshot:
// after a successful call the whole collection is fetched again through
// Reconcile.
package services
