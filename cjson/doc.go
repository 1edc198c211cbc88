//Package cjson implements the JSON protocol between the nanocar builder and
//a host molecular editor such as Avogadro 2. The host sends the current
//structure as Chemical JSON, together with the values of the user options,
//and reads back a result with the new structure in XYZ format.
//The package also builds the option menus the host shows to the user.
package cjson
