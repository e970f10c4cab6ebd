/*
Package ddns keeps DNS records in a Route 53 hosted zone pointed at the
caller's current IP addresses.

Usage will always start with [ddns.New],
which returns the DDNSClient implementation.
New requires the hosted zone name, the host names to update, and a
provider option such as [UsingRoute53].
Additional client configuration options are listed in the docs for New.

The low-level API client lives in the route53 subpackage.
*/
package ddns
