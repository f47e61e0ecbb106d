// Package template renders the Apache virtual host configuration written by
// apache2-vhost.
//
// The layout is fixed and embedded in the binary (apache/vhost.conf.tmpl).
// Only two values are substituted: the document root, which appears twice
// (DocumentRoot and the <Directory> block), and the server name, which
// appears once. The Options, AllowOverride, Order and Allow directives are
// never parameterized.
//
//	content, err := template.Render("/var/www/example", "example.com")
//
// Values are inserted verbatim. Both are already constrained elsewhere: the
// document root is an absolute filesystem path and the server name is a
// validated host name that is also used as a file name.
package template
