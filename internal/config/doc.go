// Package config loads the apache2-vhost configuration.
//
// Values are layered, later sources winning:
//
//  1. built-in defaults (New)
//  2. config.yaml from /etc/apache2-vhost/ or ~/.config/apache2-vhost/,
//     or the file given with --config
//  3. APACHE2_VHOST_* environment variables
//  4. command-line flags that were set explicitly
//
// Example config.yaml:
//
//	httpd_root: /etc/apache2
//	suffix: .vhost.conf
//	apache_binary: apache2
//	locate: true
//	hosts_file: /etc/hosts
//	hosts_address: 127.0.0.1
//	manage_hosts: true
//
// An empty httpd_root means the root is discovered by asking the web server
// binary (see package locator) unless locate is false, in which case the
// platform default is used.
package config
