// Package pageobj implements the page object pattern for browser test
// automation.
//
// Locators are resolved to lazy element handles, which are only sent to the
// browser when used, so they never go stale across page transitions. Handles
// are wrapped in typed page objects and pages, and the Wait* funcs poll the
// browser until an element is present, visible or clickable.
//
// Browsers are driven through the Driver interface, implemented by the
// cdpdriver, roddriver and pwdriver packages, and by the in-memory
// pageobjtest package for tests.
package pageobj
