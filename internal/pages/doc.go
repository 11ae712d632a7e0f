// Package pages holds the catalog of functional modules devdeck exposes and
// the resolver that decides which of them are visible on a host.
//
// A [Catalog] is constructed explicitly, populated once at startup (usually
// with [Builtin]) and then read. [Catalog.Resolve] is a pure function of the
// catalog, the host, an optional [Config] and an optional [Filter]:
//
//  1. keep pages whose Platforms include the host;
//  2. if Config.EnabledPages is non-empty, keep only those ids and ignore
//     Config.DisabledPages;
//  3. otherwise drop Config.DisabledPages;
//  4. append Config.CustomPages verbatim, without host filtering;
//  5. apply the Filter;
//  6. stable-sort by Order.
//
// Registering an id that already exists replaces the entry in place and is
// reported through the catalog's override hook.
package pages
