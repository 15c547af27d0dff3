package content

// Bundled Google Maps embed URLs for the four pages, used when no override
// is configured.
const (
	HomeMapEmbed = "https://www.google.com/maps/embed?pb=!1m18!1m12!1m3!1d3615.022253974696!2d121.56235021214552!3d25.03396498397207!2m3!1f0!2f0!3f0!3m2!1i1024!2i768!4f13.1!3m3!1m2!1s0x3442abbf0c93418d%3A0x64db763b69ad2b6!2z5Y-w5YyXIDEwMQ!5e0!3m2!1szh-TW!2stw!4v1717132800000!5m2!1szh-TW!2stw"

	TrafficMapEmbed = "https://www.google.com/maps/embed?pb=!1m18!1m12!1m3!1d3614.568581001418!2d121.54126917607693!3d25.045193677804056!2m3!1f0!2f0!3f0!3m2!1i1024!2i768!4f13.1!3m3!1m2!1s0x3442a97a5ddeea4f%3A0x1dea53c58d32e848!2z5paw5YyX6Y6u5Lit5b-DIOWPsOmdmOaWsOWMl-W6lw!5e0!3m2!1szh-TW!2stw!4v1717136400000!5m2!1szh-TW!2stw"

	SafeNavMapEmbed = "https://www.google.com/maps/embed?pb=!1m28!1m12!1m3!1d115730.42421285012!2d121.46760245590318!3d25.082775829333334!2m3!1f0!2f0!3f0!3m2!1i1024!2i768!4f13.1!4m13!3e0!4m5!1s0x3442abbf4a4e1fbf%3A0xc8a2434d0491d738!2z5Y-w5YyX5biC5p2x5Y2A!3m2!1d25.0375198!2d121.5636796!4m5!1s0x3442ae91fa777e5b%3A0xfb393137f6741c0f!2z5ZyL56uL5bqt5rOV5Zyf5Z-O!3m2!1d25.1023988!2d121.5493648!5e0!3m2!1szh-TW!2stw!4v1717140000000!5m2!1szh-TW!2stw"

	ObstacleMapEmbed = "https://www.google.com/maps/embed?pb=!1m18!1m12!1m3!1d3614.7267283102656!2d121.56151497607821!3d25.04027698397505!2m3!1f0!2f0!3f0!3m2!1i1024!2i768!4f13.1!3m3!1m2!1s0x3442abb1d22d4daf%3A0xe8a20c95d5fd8755!2z5Y-w5YyX5biC5Y-w5YyXIE1STiDliIbkuKrmloflpKc!5e0!3m2!1szh-TW!2stw!4v1717240800000!5m2!1szh-TW!2stw"
)
