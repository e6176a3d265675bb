// Package main provides the entry point of the product-reviews service.
// It runs a Fiber web server that stores product reviews of Shopify shops
// with gorm, serves published reviews and widget settings to the
// storefront, and gives merchants moderation, replies and a dashboard
// through an access key protected admin API.
package main
