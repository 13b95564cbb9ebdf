// SPDX-License-Identifier: GPL-3.0-or-later

/*
Package web contains HTTP request and client configurations.
HTTPConfig structure embeds both of them, and it's the only structure that intended to be used as part of a client's configuration.
It allows to have same set of user configurable options for every API client built on top of it.
*/
package web
