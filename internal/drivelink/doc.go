// Package drivelink probes Google Drive links collected from course
// sheets and classifies each as Available, Missing, Broken Link, No Link,
// or Not Checked.
//
// Three Checker implementations exist: APIChecker calls the Drive v3
// metadata endpoint with a bearer token and falls back to the public
// probe on API trouble, PublicChecker fetches the public file or folder
// URL and treats a login-page redirect as private content, and Disabled
// skips network access entirely. The caller selects one at startup based
// on configuration.
package drivelink
