package prtgapi

import jsoniter "github.com/json-iterator/go"

const (
	statusEndpoint      = "api/getstatus.htm"
	geolocatorEndpoint  = "api/geolocator.htm"
	tableEndpoint       = "api/table.xml"
	channelEditEndpoint = "controls/channeledit.htm"
	editEndpoint        = "editsettings"
	addSensorEndpoint   = "addsensor5.htm"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary
